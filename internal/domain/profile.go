package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidProfile is returned when a profile is missing or breaks its invariants.
var ErrInvalidProfile = errors.New("invalid profile")

// NumericStats summarizes the non-null values of a numeric column.
type NumericStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Profile is the read-only snapshot of a dataset that rules evaluate.
// It is built once per run and shared by every rule.
type Profile struct {
	RowCount     int
	ColumnCount  int
	ColumnNames  []string
	NullCounts   map[string]int
	NumericStats map[string]NumericStats
	Table        *Table

	// Path identifies the source of the data. Empty for in-memory tables.
	Path string
}

// Validate checks the structural invariants of the profile.
func (p *Profile) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil profile", ErrInvalidProfile)
	}
	if p.RowCount < 0 {
		return fmt.Errorf("%w: negative row count %d", ErrInvalidProfile, p.RowCount)
	}
	if p.ColumnCount != len(p.ColumnNames) {
		return fmt.Errorf("%w: column count %d does not match %d column names",
			ErrInvalidProfile, p.ColumnCount, len(p.ColumnNames))
	}

	names := make(map[string]bool, len(p.ColumnNames))
	for _, n := range p.ColumnNames {
		if names[n] {
			return fmt.Errorf("%w: duplicate column name %q", ErrInvalidProfile, n)
		}
		names[n] = true
	}
	for col := range p.NumericStats {
		if !names[col] {
			return fmt.Errorf("%w: numeric stats for unknown column %q", ErrInvalidProfile, col)
		}
	}
	return nil
}

// TypeBreakdown counts columns per class (numeric, text, other) from the
// declared column kinds. Without a table every count is zero.
func (p *Profile) TypeBreakdown() map[string]int {
	counts := map[string]int{ClassNumeric: 0, ClassText: 0, ClassOther: 0}
	if p.Table == nil {
		return counts
	}
	for _, c := range p.Table.Columns {
		counts[c.Kind.Class()]++
	}
	return counts
}

// RequireTable returns the underlying table, or an error when the profile carries none.
func (p *Profile) RequireTable() (*Table, error) {
	if p.Table == nil {
		return nil, errors.New("profile has no table")
	}
	return p.Table, nil
}
