package rules_test

import (
	"math"
	"testing"

	"github.com/dfguard/dfguard/internal/domain"
	"github.com/dfguard/dfguard/internal/domain/profiler"
	"github.com/dfguard/dfguard/internal/domain/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileOf(t *testing.T, cols ...domain.Column) *domain.Profile {
	t.Helper()
	table, err := domain.NewTable(cols...)
	require.NoError(t, err)
	p, err := profiler.BuildProfile(table, "")
	require.NoError(t, err)
	return p
}

func fired(t *testing.T, r domain.Rule, p *domain.Profile) domain.Finding {
	t.Helper()
	outcome, err := r.Evaluate(p)
	require.NoError(t, err)
	f, ok := outcome.Finding()
	require.True(t, ok, "%s should fire", r.Name())
	return f
}

func silent(t *testing.T, r domain.Rule, p *domain.Profile) {
	t.Helper()
	outcome, err := r.Evaluate(p)
	require.NoError(t, err)
	_, ok := outcome.Finding()
	assert.False(t, ok, "%s should be silent", r.Name())
}

// ── structural ──

func TestNonEmpty_EmptyTableWarns(t *testing.T) {
	f := fired(t, rules.NonEmpty{}, profileOf(t))
	assert.True(t, f.Warning)
	assert.Equal(t, "Dataset empty", f.Message)
	assert.Equal(t, 0, f.Details["rows"])
}

func TestNonEmpty_AlwaysReportsRowCount(t *testing.T) {
	f := fired(t, rules.NonEmpty{}, profileOf(t, domain.NewColumn("x", []any{1})))
	assert.False(t, f.Warning)
	assert.Equal(t, 1, f.Details["rows"])
	assert.NotContains(t, f.Message, "empty ")
}

func TestDuplicateRows_None(t *testing.T) {
	f := fired(t, rules.DuplicateRows{}, profileOf(t, domain.NewColumn("x", []any{1, 2, 3})))
	assert.False(t, f.Warning)
	assert.Equal(t, 0, f.Details["count"])
	assert.Equal(t, 0.0, f.Details["ratio"])
	assert.Equal(t, 3, f.Details["total_rows"])
}

func TestDuplicateRows_Detects(t *testing.T) {
	f := fired(t, rules.DuplicateRows{}, profileOf(t, domain.NewColumn("x", []any{1, 1, 2})))
	assert.True(t, f.Warning)
	assert.Equal(t, 1, f.Details["count"])
	assert.InDelta(t, 1.0/3.0, f.Details["ratio"], 1e-9)
}

func TestDuplicateRows_AllDuplicates(t *testing.T) {
	f := fired(t, rules.DuplicateRows{}, profileOf(t, domain.NewColumn("x", []any{1, 1, 1, 1})))
	assert.True(t, f.Warning)
	assert.Equal(t, 3, f.Details["count"])
	assert.Equal(t, 0.75, f.Details["ratio"])
}

func TestDuplicateRows_ComparesAllColumns(t *testing.T) {
	p := profileOf(t,
		domain.NewColumn("id", []any{1, 1, 1}),
		domain.NewColumn("name", []any{"a", "b", "a"}),
	)
	f := fired(t, rules.DuplicateRows{}, p)
	assert.Equal(t, 1, f.Details["count"])
}

func TestDuplicateRows_NullsCompareEqual(t *testing.T) {
	p := profileOf(t, domain.NewColumn("x", []any{nil, nil, "a"}))
	f := fired(t, rules.DuplicateRows{}, p)
	assert.Equal(t, 1, f.Details["count"])
}

func TestDuplicateRows_SignedZerosCompareEqual(t *testing.T) {
	p := profileOf(t, domain.NewColumn("x", []any{0.0, 0.0, math.Copysign(0, -1)}))
	f := fired(t, rules.DuplicateRows{}, p)
	assert.Equal(t, 2, f.Details["count"])
}

func TestDuplicateRows_MixedObjectNumbersCompareByValue(t *testing.T) {
	p := profileOf(t, domain.NewColumn("x", []any{1, 1.0, "a"}))
	f := fired(t, rules.DuplicateRows{}, p)
	assert.Equal(t, 1, f.Details["count"])
}

func TestDuplicateRows_EmptyTableRatioIsZero(t *testing.T) {
	f := fired(t, rules.DuplicateRows{}, profileOf(t))
	assert.False(t, f.Warning)
	assert.Equal(t, 0.0, f.Details["ratio"])
}

func TestDuplicateRows_RequiresTable(t *testing.T) {
	_, err := rules.DuplicateRows{}.Evaluate(&domain.Profile{})
	assert.Error(t, err)
}

// ── quality ──

func TestWhitespace_CleanColumn(t *testing.T) {
	f := fired(t, rules.Whitespace{}, profileOf(t, domain.NewColumn("clean", []any{"a", "b", "c"})))
	assert.False(t, f.Warning)
	assert.Equal(t, 0, f.Details["clean"])
}

func TestWhitespace_DirtyColumn(t *testing.T) {
	f := fired(t, rules.Whitespace{}, profileOf(t, domain.NewColumn("dirty", []any{" a", "b ", "  c  "})))
	assert.True(t, f.Warning)
	assert.Equal(t, 3, f.Details["dirty"])
}

func TestWhitespace_ReportsEveryColumn(t *testing.T) {
	p := profileOf(t,
		domain.NewColumn("clean", []any{"a", "b"}),
		domain.NewColumn("dirty", []any{" x", "y "}),
	)
	f := fired(t, rules.Whitespace{}, p)
	assert.True(t, f.Warning)
	assert.Equal(t, 0, f.Details["clean"])
	assert.Equal(t, 2, f.Details["dirty"])
}

func TestWhitespace_InteriorAndTabs(t *testing.T) {
	p := profileOf(t, domain.NewColumn("s", []any{"a  b", "a\tb", `a\tb`, "a b"}))
	f := fired(t, rules.Whitespace{}, p)
	assert.Equal(t, 3, f.Details["s"])
}

func TestNullRatio_LowRatio(t *testing.T) {
	f := fired(t, rules.NullRatio{}, profileOf(t, domain.NewColumn("x", []any{1, nil, 3})))
	assert.False(t, f.Warning)
	assert.InDelta(t, 1.0/3.0, f.Details["x"], 1e-9)
}

func TestNullRatio_HighRatioWarns(t *testing.T) {
	f := fired(t, rules.NullRatio{}, profileOf(t, domain.NewColumn("x", []any{nil, nil, 1, nil})))
	assert.True(t, f.Warning)
	assert.Equal(t, 0.75, f.Details["x"])
}

func TestNullRatio_ThresholdIsInclusive(t *testing.T) {
	f := fired(t, rules.NullRatio{}, profileOf(t, domain.NewColumn("x", []any{nil, 1})))
	assert.True(t, f.Warning)
	assert.Equal(t, 0.5, f.Details["x"])
}

func TestNullRatio_AllNulls(t *testing.T) {
	f := fired(t, rules.NullRatio{}, profileOf(t, domain.NewColumn("x", []any{nil, nil, nil})))
	assert.True(t, f.Warning)
	assert.Equal(t, 1.0, f.Details["x"])
}

func TestNullRatio_MissingNullCountFails(t *testing.T) {
	p := &domain.Profile{RowCount: 1, ColumnCount: 1, ColumnNames: []string{"x"}}
	_, err := rules.NullRatio{}.Evaluate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"x"`)
}

func TestTypeMismatch_PureStringIsSilent(t *testing.T) {
	silent(t, rules.TypeMismatch{}, profileOf(t, domain.NewColumn("name", []any{"Alice", "Bob", "Charlie"})))
}

func TestTypeMismatch_NumericColumnIsSkipped(t *testing.T) {
	silent(t, rules.TypeMismatch{}, profileOf(t, domain.NewColumn("value", []any{1, 2, 3})))
}

func TestTypeMismatch_NumericStringsAreSilent(t *testing.T) {
	silent(t, rules.TypeMismatch{}, profileOf(t, domain.NewColumn("value", []any{"1", "2", "3"})))
}

func TestTypeMismatch_MixedColumnWarns(t *testing.T) {
	f := fired(t, rules.TypeMismatch{}, profileOf(t, domain.NewColumn("value", []any{1, "two", 3})))
	assert.True(t, f.Warning)
	require.Contains(t, f.Details, "value")
	assert.InDelta(t, 2.0/3.0, f.Details["value"], 1e-9)
}

func TestTypeMismatch_OnlyMixedColumnsReported(t *testing.T) {
	p := profileOf(t,
		domain.NewColumn("mixed", []any{"1", "x"}),
		domain.NewColumn("text", []any{"a", "b"}),
	)
	f := fired(t, rules.TypeMismatch{}, p)
	assert.Contains(t, f.Details, "mixed")
	assert.NotContains(t, f.Details, "text")
}

// ── numeric ──

func outlierColumn(t *testing.T, f domain.Finding, name string) domain.Details {
	t.Helper()
	cols, ok := f.Details["columns"].(domain.Details)
	require.True(t, ok)
	col, ok := cols[name].(domain.Details)
	require.True(t, ok, "column %q missing", name)
	return col
}

func TestNumericOutlier_NoOutliers(t *testing.T) {
	f := fired(t, rules.NumericOutlier{}, profileOf(t, domain.NewColumn("value", []any{10, 11, 12, 13})))
	assert.False(t, f.Warning)
	assert.Equal(t, 0, outlierColumn(t, f, "value")["count"])
}

func TestNumericOutlier_DetectsOutlier(t *testing.T) {
	f := fired(t, rules.NumericOutlier{}, profileOf(t, domain.NewColumn("value", []any{10, 12, 11, 9999})))
	assert.True(t, f.Warning)
	col := outlierColumn(t, f, "value")
	assert.Equal(t, 1, col["count"])
	assert.Equal(t, 0.25, col["ratio"])
}

func TestNumericOutlier_EmptyNumericColumn(t *testing.T) {
	col := domain.Column{Name: "value", Kind: domain.KindFloat, Values: []any{nil, nil}}
	f := fired(t, rules.NumericOutlier{}, profileOf(t, col))
	assert.False(t, f.Warning)
	c := outlierColumn(t, f, "value")
	assert.Equal(t, 0, c["count"])
	assert.Equal(t, 0.0, c["ratio"])
}

func TestNumericOutlier_IgnoresTextColumns(t *testing.T) {
	f := fired(t, rules.NumericOutlier{}, profileOf(t, domain.NewColumn("s", []any{"a", "b"})))
	cols := f.Details["columns"].(domain.Details)
	assert.Empty(t, cols)
}

func TestBuiltin_Order(t *testing.T) {
	var names []string
	for _, r := range rules.Builtin() {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{
		"non_empty", "duplicate_rows",
		"whitespace_issues", "null_ratio", "type_consistency",
		"numeric_outliers",
	}, names)
}
