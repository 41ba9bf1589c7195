package rules

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dfguard/dfguard/internal/domain"
	"github.com/dfguard/dfguard/internal/domain/stats"
)

// NullRatioThreshold is the inclusive null share at which a column warns.
const NullRatioThreshold = 0.5

var repeatedSpace = regexp.MustCompile(`[\s\v\p{Z}]{2,}`)

// Whitespace counts, per column, cells with leading/trailing whitespace,
// repeated interior whitespace, or a tab (raw or escaped).
type Whitespace struct{}

func (Whitespace) Name() string               { return "whitespace_issues" }
func (Whitespace) Category() domain.Category { return domain.CategoryQuality }

func (Whitespace) Evaluate(p *domain.Profile) (domain.Outcome, error) {
	table, err := p.RequireTable()
	if err != nil {
		return domain.Silent(), err
	}

	details := make(domain.Details, len(table.Columns))
	warning := false
	for _, col := range table.Columns {
		affected := 0
		for _, v := range col.Values {
			if hasWhitespaceIssue(domain.FormatCell(v)) {
				affected++
			}
		}
		details[col.Name] = affected
		if affected > 0 {
			warning = true
		}
	}

	return domain.Fire(domain.Finding{
		Warning: warning,
		Message: "Whitespace issues",
		Details: details,
	}), nil
}

func hasWhitespaceIssue(s string) bool {
	return strings.TrimSpace(s) != s ||
		repeatedSpace.MatchString(s) ||
		strings.Contains(s, "\t") ||
		strings.Contains(s, `\t`)
}

// NullRatio reports each column's share of nulls and warns when any column
// reaches NullRatioThreshold.
type NullRatio struct{}

func (NullRatio) Name() string               { return "null_ratio" }
func (NullRatio) Category() domain.Category { return domain.CategoryQuality }

func (NullRatio) Evaluate(p *domain.Profile) (domain.Outcome, error) {
	details := make(domain.Details, len(p.ColumnNames))
	warning := false
	for _, name := range p.ColumnNames {
		nulls, ok := p.NullCounts[name]
		if !ok {
			return domain.Silent(), fmt.Errorf("null count missing for column %q", name)
		}
		ratio := stats.Ratio(nulls, p.RowCount)
		details[name] = ratio
		if ratio >= NullRatioThreshold {
			warning = true
		}
	}

	return domain.Fire(domain.Finding{
		Warning: warning,
		Message: "Null ratio",
		Details: details,
	}), nil
}

// TypeMismatch flags non-numeric columns in which only some cells parse as
// numbers. It is silent when no column qualifies.
type TypeMismatch struct{}

func (TypeMismatch) Name() string               { return "type_consistency" }
func (TypeMismatch) Category() domain.Category { return domain.CategoryQuality }

func (TypeMismatch) Evaluate(p *domain.Profile) (domain.Outcome, error) {
	table, err := p.RequireTable()
	if err != nil {
		return domain.Silent(), err
	}

	rows := table.NumRows()
	issues := make(domain.Details)
	for _, col := range table.Columns {
		if col.Kind.IsNumeric() {
			continue
		}
		convertible := 0
		for _, v := range col.Values {
			if coercesToNumber(v) {
				convertible++
			}
		}
		if convertible == 0 || convertible == rows {
			continue
		}
		issues[col.Name] = stats.Ratio(convertible, rows)
	}

	if len(issues) == 0 {
		return domain.Silent(), nil
	}
	return domain.Fire(domain.Finding{
		Warning: true,
		Message: "Type mismatch",
		Details: issues,
	}), nil
}

// coercesToNumber reports whether a cell would survive numeric coercion
// as a non-null number.
func coercesToNumber(v any) bool {
	switch t := v.(type) {
	case int64, bool:
		return true
	case float64:
		return !math.IsNaN(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return err == nil && !math.IsNaN(f)
	default:
		return false
	}
}
