package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfguard/dfguard/internal/adapters/inbound/cli"
	"github.com/dfguard/dfguard/internal/domain"
)

const cleanCSV = "id,name,score\n1,alice,10.5\n2,bob,11.0\n3,carol,9.5\n"

const dirtyCSV = "id,name\n1, alice\n1, alice\n2,\n3,\n"

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dfguard ")
}

func TestValidate_CleanFileText(t *testing.T) {
	path := writeCSV(t, "clean.csv", cleanCSV)

	out, _, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "clean.csv")
	assert.Contains(t, out, "Status: OK")
}

func TestValidate_JSONIsTheOnlyOutput(t *testing.T) {
	path := writeCSV(t, "clean.csv", cleanCSV)

	out, _, err := execute(t, "validate", "--json", path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "ok", doc["status"])
	assert.Equal(t, path, doc["file"])
	summary := doc["summary"].(map[string]any)
	assert.Equal(t, 3.0, summary["rows"])
	assert.Equal(t, 3.0, summary["columns"])
}

func TestValidate_WarningsExitZeroWithoutStrict(t *testing.T) {
	path := writeCSV(t, "dirty.csv", dirtyCSV)

	out, _, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Duplicate rows")
	assert.Contains(t, out, "Status: WARNING")
}

func TestValidate_StrictFailsOnWarnings(t *testing.T) {
	path := writeCSV(t, "dirty.csv", dirtyCSV)

	_, _, err := execute(t, "validate", "--strict", path)
	assert.ErrorIs(t, err, cli.ErrWarnings)
}

func TestValidate_StrictPassesCleanData(t *testing.T) {
	path := writeCSV(t, "clean.csv", cleanCSV)

	_, _, err := execute(t, "validate", "--strict", path)
	assert.NoError(t, err)
}

func TestValidate_MissingFile(t *testing.T) {
	out, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
	assert.Empty(t, out)
}

func TestValidate_UnreadableFile(t *testing.T) {
	path := writeCSV(t, "ragged.csv", "a,b\n1,2,3\n")

	_, _, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestValidate_RequiresAFile(t *testing.T) {
	_, _, err := execute(t, "validate")
	assert.Error(t, err)
}

func TestValidate_MultipleFilesJSON(t *testing.T) {
	clean := writeCSV(t, "clean.csv", cleanCSV)
	missing := filepath.Join(t.TempDir(), "missing.csv")

	out, _, err := execute(t, "validate", "--json", clean, missing)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "ok", docs[0]["status"])
	assert.Equal(t, missing, docs[1]["file"])
	assert.Contains(t, docs[1]["error"], "file not found")
}

func TestValidate_MaxRowsFlag(t *testing.T) {
	path := writeCSV(t, "clean.csv", cleanCSV)

	out, _, err := execute(t, "validate", "--json", "--max-rows", "2", path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2.0, doc["summary"].(map[string]any)["rows"])
}

func TestValidate_MaxRowsFromEnvironment(t *testing.T) {
	t.Setenv("DFGUARD_MAX_ROWS", "1")
	path := writeCSV(t, "clean.csv", cleanCSV)

	out, _, err := execute(t, "validate", "--json", path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 1.0, doc["summary"].(map[string]any)["rows"])
}

func TestValidate_LogLevelFromEnvironment(t *testing.T) {
	t.Setenv("DFGUARD_LOG_LEVEL", "info")
	path := writeCSV(t, "clean.csv", cleanCSV)

	_, stderr, err := execute(t, "validate", "--json", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "validation complete")
}

func TestValidate_DefaultLogLevelIsQuiet(t *testing.T) {
	path := writeCSV(t, "clean.csv", cleanCSV)

	_, stderr, err := execute(t, "validate", "--json", path)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "validation complete")
}

func TestValidate_JSONLogFormat(t *testing.T) {
	path := writeCSV(t, "clean.csv", cleanCSV)

	_, stderr, err := execute(t, "validate", "--json", "--log-level", "info", "--log-format", "json", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"validation complete"`)
}

func TestRules_Text(t *testing.T) {
	out, _, err := execute(t, "rules")
	require.NoError(t, err)
	for _, name := range []string{"non_empty", "duplicate_rows", "whitespace_issues", "null_ratio", "type_consistency", "numeric_outliers"} {
		assert.Contains(t, out, name)
	}
}

func TestRules_JSON(t *testing.T) {
	out, _, err := execute(t, "rules", "--json")
	require.NoError(t, err)

	var list []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 6)
	assert.Equal(t, map[string]string{"name": "non_empty", "category": "structural"}, list[0])
	assert.Equal(t, map[string]string{"name": "numeric_outliers", "category": "numeric"}, list[5])
}

func TestWatch_ValidatesOnStartAndStopsOnCancel(t *testing.T) {
	path := writeCSV(t, "clean.csv", cleanCSV)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	out, _, err := executeContext(t, ctx, "watch", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Status: OK")
}

func TestWatch_MissingFile(t *testing.T) {
	_, _, err := execute(t, "watch", filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestMCPCommandExists(t *testing.T) {
	_, _, err := execute(t, "mcp", "--help")
	assert.NoError(t, err)
}

func TestMCPServeCommandExists(t *testing.T) {
	_, _, err := execute(t, "mcp", "serve", "--help")
	assert.NoError(t, err)
}
