// Package profiler builds the read-only dataset snapshot that rules evaluate.
package profiler

import (
	"fmt"

	"github.com/dfguard/dfguard/internal/domain"
	"github.com/dfguard/dfguard/internal/domain/stats"
)

// BuildProfile computes row/column counts, null counts and numeric
// statistics for table. source is recorded as the profile path and may be empty.
func BuildProfile(table *domain.Table, source string) (*domain.Profile, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil table", domain.ErrInvalidProfile)
	}

	p := &domain.Profile{
		RowCount:     table.NumRows(),
		ColumnCount:  len(table.Columns),
		ColumnNames:  table.ColumnNames(),
		NullCounts:   make(map[string]int, len(table.Columns)),
		NumericStats: make(map[string]domain.NumericStats),
		Table:        table,
		Path:         source,
	}

	for _, col := range table.Columns {
		p.NullCounts[col.Name] = col.NullCount()

		if !col.Kind.IsNumeric() {
			continue
		}
		summary, ok := stats.Summarize(col.Floats())
		if !ok {
			continue
		}
		p.NumericStats[col.Name] = domain.NumericStats{
			Min:  summary.Min,
			Max:  summary.Max,
			Mean: summary.Mean,
			Std:  summary.Std,
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
