package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	mcpadapter "github.com/dfguard/dfguard/internal/adapters/inbound/mcp"
)

func newMCPCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the dfguard MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(v))
	return cmd
}

func newMCPServeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start dfguard MCP server (stdio)",
		Long: "Start the dfguard MCP server using stdio transport. This lets AI assistants " +
			"validate and profile datasets and list the rule catalog.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol; diagnostics stay on stderr.
			svc, _, err := newService(cmd, v)
			if err != nil {
				return err
			}
			return server.ServeStdio(mcpadapter.NewDfguardMCPServer(svc))
		},
	}
}
