package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/dfguard/dfguard/internal/application"
	"github.com/dfguard/dfguard/internal/version"
)

// NewDfguardMCPServer creates an MCP server exposing dataset validation
// tools and the rule catalog resource.
func NewDfguardMCPServer(svc *application.ValidateService) *server.MCPServer {
	s := server.NewMCPServer(
		"dfguard",
		version.Short(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc)
	registerResources(s, svc)

	return s
}
