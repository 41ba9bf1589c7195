package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dfguard/dfguard/internal/application"
)

const rulesURI = "dfguard://rules"

// registerResources registers all dfguard MCP resources on the given server.
func registerResources(s *server.MCPServer, svc *application.ValidateService) {
	s.AddResource(
		mcplib.NewResource(
			rulesURI,
			"Rule Catalog",
			mcplib.WithResourceDescription("Registered validation rules grouped by category, in execution order"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(svc),
	)
}

func handleRulesResource(svc *application.ValidateService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(ruleCatalog(svc), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling rules: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      rulesURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
