// Package rules contains the built-in dataset checks.
package rules

import (
	"github.com/dfguard/dfguard/internal/domain"
	"github.com/dfguard/dfguard/internal/domain/stats"
)

// NonEmpty reports the row count and warns when the dataset has no rows.
type NonEmpty struct{}

func (NonEmpty) Name() string               { return "non_empty" }
func (NonEmpty) Category() domain.Category { return domain.CategoryStructural }

func (NonEmpty) Evaluate(p *domain.Profile) (domain.Outcome, error) {
	if p.RowCount == 0 {
		return domain.Fire(domain.Finding{
			Warning: true,
			Message: "Dataset empty",
			Details: domain.Details{"rows": 0},
		}), nil
	}
	return domain.Fire(domain.Finding{
		Message: "Dataset non-empty",
		Details: domain.Details{"rows": p.RowCount},
	}), nil
}

// DuplicateRows counts rows that exactly repeat an earlier row.
type DuplicateRows struct{}

func (DuplicateRows) Name() string               { return "duplicate_rows" }
func (DuplicateRows) Category() domain.Category { return domain.CategoryStructural }

func (DuplicateRows) Evaluate(p *domain.Profile) (domain.Outcome, error) {
	table, err := p.RequireTable()
	if err != nil {
		return domain.Silent(), err
	}

	rows := table.NumRows()
	seen := make(map[string]struct{}, rows)
	duplicates := 0
	for i := 0; i < rows; i++ {
		key := table.RowKey(i)
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
	}

	return domain.Fire(domain.Finding{
		Warning: duplicates > 0,
		Message: "Duplicate rows",
		Details: domain.Details{
			"count":      duplicates,
			"ratio":      stats.Ratio(duplicates, rows),
			"total_rows": rows,
		},
	}), nil
}
