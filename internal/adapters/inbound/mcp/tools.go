package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dfguard/dfguard/internal/application"
	"github.com/dfguard/dfguard/internal/domain"
)

// registerTools registers all dfguard MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *application.ValidateService) {
	// 1. dfguard_validate
	s.AddTool(
		mcplib.NewTool("dfguard_validate",
			mcplib.WithDescription("Validates a CSV, Parquet or XLSX dataset and returns the validation report as JSON"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path to the dataset file"),
			),
			mcplib.WithNumber("max_rows", mcplib.Description("Maximum number of CSV rows to read (default from config, 50000)")),
		),
		handleValidate(svc),
	)

	// 2. dfguard_profile
	s.AddTool(
		mcplib.NewTool("dfguard_profile",
			mcplib.WithDescription("Returns row/column counts, null counts and numeric statistics for a dataset without running rules"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path to the dataset file"),
			),
		),
		handleProfile(svc),
	)

	// 3. dfguard_list_rules
	s.AddTool(
		mcplib.NewTool("dfguard_list_rules",
			mcplib.WithDescription("Lists the registered validation rules in execution order"),
		),
		handleListRules(svc),
	)
}

func handleValidate(svc *application.ValidateService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		opts := application.ValidateOptions{MaxRows: request.GetInt("max_rows", 0)}

		report, err := svc.ValidateFile(ctx, path, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

type profileJSON struct {
	File         string                         `json:"file"`
	Rows         int                            `json:"rows"`
	Columns      int                            `json:"columns"`
	ColumnNames  []string                       `json:"columnNames"`
	ColumnKinds  map[string]domain.ColumnKind   `json:"columnKinds"`
	NullCounts   map[string]int                 `json:"nullCounts"`
	NumericStats map[string]domain.NumericStats `json:"numericStats"`
}

func handleProfile(svc *application.ValidateService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		p, err := svc.ProfileFile(ctx, path, application.ValidateOptions{})
		if err != nil {
			return errorResult(fmt.Sprintf("profiling failed: %v", err)), nil
		}

		kinds := make(map[string]domain.ColumnKind, len(p.ColumnNames))
		for _, c := range p.Table.Columns {
			kinds[c.Name] = c.Kind
		}
		return jsonResult(profileJSON{
			File:         p.Path,
			Rows:         p.RowCount,
			Columns:      p.ColumnCount,
			ColumnNames:  p.ColumnNames,
			ColumnKinds:  kinds,
			NullCounts:   p.NullCounts,
			NumericStats: finiteStats(p.NumericStats),
		})
	}
}

// finiteStats zeroes the std of single-value columns, which is NaN and
// has no JSON form.
func finiteStats(in map[string]domain.NumericStats) map[string]domain.NumericStats {
	out := make(map[string]domain.NumericStats, len(in))
	for name, st := range in {
		if st.Std != st.Std {
			st.Std = 0
		}
		out[name] = st
	}
	return out
}

type ruleJSON struct {
	Name     string          `json:"name"`
	Category domain.Category `json:"category"`
}

func ruleCatalog(svc *application.ValidateService) []ruleJSON {
	var out []ruleJSON
	for _, c := range domain.Categories {
		for _, r := range svc.Engine().Rules(c) {
			out = append(out, ruleJSON{Name: r.Name(), Category: c})
		}
	}
	return out
}

func handleListRules(svc *application.ValidateService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(ruleCatalog(svc))
	}
}

// jsonResult marshals v into a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error result with the given message.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
