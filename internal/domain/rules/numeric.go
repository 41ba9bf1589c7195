package rules

import (
	"github.com/dfguard/dfguard/internal/domain"
	"github.com/dfguard/dfguard/internal/domain/stats"
)

// NumericOutlier counts, per numeric column, values outside the Tukey fences.
type NumericOutlier struct{}

func (NumericOutlier) Name() string               { return "numeric_outliers" }
func (NumericOutlier) Category() domain.Category { return domain.CategoryNumeric }

func (NumericOutlier) Evaluate(p *domain.Profile) (domain.Outcome, error) {
	table, err := p.RequireTable()
	if err != nil {
		return domain.Silent(), err
	}

	columns := make(domain.Details)
	warning := false
	for _, col := range table.Columns {
		if !col.Kind.IsNumeric() {
			continue
		}
		values := col.Floats()
		count := 0
		if len(values) > 0 {
			count = stats.CountOutside(values, stats.TukeyFences(values))
		}
		columns[col.Name] = domain.Details{
			"count": count,
			"ratio": stats.Ratio(count, len(values)),
		}
		if count > 0 {
			warning = true
		}
	}

	return domain.Fire(domain.Finding{
		Warning: warning,
		Message: "Numeric outliers",
		Details: domain.Details{"columns": columns},
	}), nil
}
