package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfguard/dfguard/internal/adapters/outbound/config"
	"github.com/dfguard/dfguard/internal/adapters/outbound/loader"
	"github.com/dfguard/dfguard/internal/application"
	"github.com/dfguard/dfguard/internal/logging"
)

func newTestService() *application.ValidateService {
	return application.NewValidateService(loader.New(), config.New(), nil, logging.Discard())
}

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func callTool(args map[string]any) mcplib.CallToolRequest {
	var req mcplib.CallToolRequest
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestNewDfguardMCPServer_RegistersTools(t *testing.T) {
	s := NewDfguardMCPServer(newTestService())
	require.NotNil(t, s)

	tools := s.ListTools()
	assert.Len(t, tools, 3)
	for _, name := range []string{"dfguard_validate", "dfguard_profile", "dfguard_list_rules"} {
		assert.Contains(t, tools, name)
	}
}

func TestHandleValidate_ReturnsReport(t *testing.T) {
	path := writeDataset(t, "id,value\n1,10\n2,11\n2,11\n")

	res, err := handleValidate(newTestService())(context.Background(), callTool(map[string]any{"path": path}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &doc))
	assert.Equal(t, "warning", doc["status"])
	assert.Equal(t, path, doc["file"])
}

func TestHandleValidate_MaxRows(t *testing.T) {
	path := writeDataset(t, "id\n1\n2\n3\n")

	res, err := handleValidate(newTestService())(context.Background(), callTool(map[string]any{"path": path, "max_rows": 2}))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &doc))
	assert.Equal(t, 2.0, doc["summary"].(map[string]any)["rows"])
}

func TestHandleValidate_MissingPath(t *testing.T) {
	res, err := handleValidate(newTestService())(context.Background(), callTool(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleValidate_MissingFile(t *testing.T) {
	res, err := handleValidate(newTestService())(context.Background(),
		callTool(map[string]any{"path": filepath.Join(t.TempDir(), "gone.csv")}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "file not found")
}

func TestHandleProfile(t *testing.T) {
	path := writeDataset(t, "id,name\n1,a\n2,\n3,c\n")

	res, err := handleProfile(newTestService())(context.Background(), callTool(map[string]any{"path": path}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var p profileJSON
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &p))
	assert.Equal(t, 3, p.Rows)
	assert.Equal(t, []string{"id", "name"}, p.ColumnNames)
	assert.Equal(t, 1, p.NullCounts["name"])
	assert.Equal(t, 0, p.NullCounts["id"])
	assert.Equal(t, 3.0, p.NumericStats["id"].Max)
	assert.NotContains(t, p.NumericStats, "name")
}

func TestHandleProfile_SingleRowHasFiniteStd(t *testing.T) {
	path := writeDataset(t, "id\n7\n")

	res, err := handleProfile(newTestService())(context.Background(), callTool(map[string]any{"path": path}))
	require.NoError(t, err)
	require.False(t, res.IsError, textOf(t, res))
}

func TestHandleListRules(t *testing.T) {
	res, err := handleListRules(newTestService())(context.Background(), callTool(nil))
	require.NoError(t, err)

	var list []ruleJSON
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &list))
	require.Len(t, list, 6)
	assert.Equal(t, "non_empty", list[0].Name)
	assert.Equal(t, "numeric_outliers", list[5].Name)
}

func TestHandleRulesResource(t *testing.T) {
	contents, err := handleRulesResource(newTestService())(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, rulesURI, text.URI)
	assert.Contains(t, text.Text, "duplicate_rows")
}
