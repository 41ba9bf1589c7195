package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ColumnKind is the declared type of a column, as a dataframe library would report it.
type ColumnKind string

const (
	KindInteger   ColumnKind = "integer"
	KindFloat     ColumnKind = "float"
	KindString    ColumnKind = "string"
	KindObject    ColumnKind = "object"
	KindBool      ColumnKind = "bool"
	KindTimestamp ColumnKind = "timestamp"
)

// Column classes used by the report summary.
const (
	ClassNumeric = "numeric"
	ClassText    = "text"
	ClassOther   = "other"
)

// IsNumeric reports whether values of this kind are stored as numbers.
func (k ColumnKind) IsNumeric() bool {
	return k == KindInteger || k == KindFloat
}

// Class maps the kind onto the numeric / text / other breakdown.
func (k ColumnKind) Class() string {
	switch k {
	case KindInteger, KindFloat:
		return ClassNumeric
	case KindString, KindObject:
		return ClassText
	default:
		return ClassOther
	}
}

// Column is a named, typed sequence of cells. A nil cell is null.
type Column struct {
	Name   string
	Kind   ColumnKind
	Values []any
}

// NewColumn builds a column from loosely typed values and infers its kind.
// Go integer types become int64, float types float64 and NaN becomes null.
// Integers mixed with nulls widen to float, as in a dataframe.
func NewColumn(name string, values []any) Column {
	normalized := make([]any, len(values))
	for i, v := range values {
		normalized[i] = normalizeCell(v)
	}
	kind := inferKind(normalized)
	if kind == KindFloat {
		for i, v := range normalized {
			if n, ok := v.(int64); ok {
				normalized[i] = float64(n)
			}
		}
	}
	return Column{Name: name, Kind: kind, Values: normalized}
}

// NullCount returns the number of null cells.
func (c Column) NullCount() int {
	n := 0
	for _, v := range c.Values {
		if v == nil {
			n++
		}
	}
	return n
}

// Floats returns the non-null cells of a numeric column as float64.
func (c Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if f, ok := ToFloat(v); ok {
			out = append(out, f)
		}
	}
	return out
}

func normalizeCell(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	case float32:
		return normalizeCell(float64(t))
	case float64:
		if math.IsNaN(t) {
			return nil
		}
		return t
	default:
		return v
	}
}

func inferKind(values []any) ColumnKind {
	var ints, floats, strs, bools, times, others, nonNull int
	for _, v := range values {
		switch v.(type) {
		case nil:
			continue
		case int64:
			ints++
		case float64:
			floats++
		case string:
			strs++
		case bool:
			bools++
		case time.Time:
			times++
		default:
			others++
		}
		nonNull++
	}

	switch {
	case nonNull == 0:
		return KindObject
	case ints == nonNull && nonNull == len(values):
		return KindInteger
	case ints+floats == nonNull:
		return KindFloat
	case strs == nonNull:
		return KindString
	case bools == nonNull:
		return KindBool
	case times == nonNull:
		return KindTimestamp
	default:
		return KindObject
	}
}

// ToFloat returns the numeric value of an int64 or float64 cell.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case float64:
		if math.IsNaN(t) {
			return 0, false
		}
		return t, true
	default:
		return 0, false
	}
}

// FormatCell renders a cell the way a dataframe renders it as a string.
func FormatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return "nan"
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e16 {
			return strconv.FormatFloat(t, 'f', 1, 64)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		if t {
			return "True"
		}
		return "False"
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(t)
	}
}

// Table is an in-memory, column-oriented dataset.
type Table struct {
	Columns []Column
}

// NewTable validates that columns are uniquely named and of equal length.
func NewTable(columns ...Column) (*Table, error) {
	seen := make(map[string]bool, len(columns))
	for i, c := range columns {
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate column name %q", c.Name)
		}
		seen[c.Name] = true
		if i > 0 && len(c.Values) != len(columns[0].Values) {
			return nil, fmt.Errorf("column %q has %d values, expected %d", c.Name, len(c.Values), len(columns[0].Values))
		}
	}
	return &Table{Columns: columns}, nil
}

// NumRows returns the row count. A table without columns has no rows.
func (t *Table) NumRows() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// RowKey returns a string that is equal for two rows iff every cell is equal.
// Nulls compare equal to each other, and numbers compare by value, so 1 and
// 1.0 match and so do 0.0 and -0.0.
func (t *Table) RowKey(row int) string {
	var b strings.Builder
	for _, c := range t.Columns {
		b.WriteString(cellKey(c.Values[row]))
		b.WriteByte('|')
	}
	return b.String()
}

func cellKey(v any) string {
	switch t := v.(type) {
	case nil:
		return "<nil>"
	case int64:
		return "num:" + strconv.FormatInt(t, 10)
	case float64:
		if t == math.Trunc(t) && t >= math.MinInt64 && t < math.MaxInt64 {
			return "num:" + strconv.FormatInt(int64(t), 10)
		}
		return "num:" + strconv.FormatFloat(t, 'g', -1, 64)
	case time.Time:
		return "time:" + strconv.FormatInt(t.UnixNano(), 10)
	default:
		return fmt.Sprintf("%T:%s", v, strconv.Quote(FormatCell(v)))
	}
}
