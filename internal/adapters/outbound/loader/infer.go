package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dfguard/dfguard/internal/domain"
)

// nullSet matches cells against the configured missing-value spellings.
type nullSet map[string]bool

func newNullSet(values []string) nullSet {
	s := make(nullSet, len(values))
	for _, v := range values {
		s[v] = true
	}
	return s
}

// normalizeHeader names blank headers "Unnamed: <i>" and suffixes repeated
// names with ".1", ".2", ...
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	counts := make(map[string]int, len(header))
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for used[name] {
			counts[h]++
			name = fmt.Sprintf("%s.%d", h, counts[h])
		}
		used[name] = true
		out[i] = name
	}
	return out
}

// buildTable turns a header and text rows into typed columns. Short rows
// are padded with nulls.
func buildTable(header []string, rows [][]string, nulls nullSet) (*domain.Table, error) {
	names := normalizeHeader(header)
	columns := make([]domain.Column, len(names))
	cells := make([]string, len(rows))
	present := make([]bool, len(rows))
	for j, name := range names {
		for i, row := range rows {
			if j < len(row) {
				cells[i], present[i] = row[j], true
			} else {
				cells[i], present[i] = "", false
			}
		}
		columns[j] = inferColumn(name, cells, present, nulls)
	}
	return domain.NewTable(columns...)
}

// inferColumn types a text column the way a CSV reader does: integers,
// then floats, then booleans, else strings. Integers with nulls widen to
// float and an all-null column is float.
func inferColumn(name string, cells []string, present []bool, nulls nullSet) domain.Column {
	n := len(cells)
	if n == 0 {
		return domain.Column{Name: name, Kind: domain.KindObject, Values: []any{}}
	}

	isNull := make([]bool, n)
	nullCount := 0
	allInt, allFloat, allBool := true, true, true
	for i, s := range cells {
		if !present[i] || nulls[s] {
			isNull[i] = true
			nullCount++
			continue
		}
		t := strings.TrimSpace(s)
		if allInt {
			if _, err := strconv.ParseInt(t, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := strconv.ParseFloat(t, 64); err != nil {
				allFloat = false
			}
		}
		if allBool {
			if _, ok := parseBool(s); !ok {
				allBool = false
			}
		}
	}

	values := make([]any, n)
	switch {
	case nullCount == n:
		return domain.Column{Name: name, Kind: domain.KindFloat, Values: values}
	case allInt && nullCount == 0:
		for i, s := range cells {
			v, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			values[i] = v
		}
		return domain.Column{Name: name, Kind: domain.KindInteger, Values: values}
	case allFloat:
		for i, s := range cells {
			if isNull[i] {
				continue
			}
			v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
			values[i] = v
		}
		return domain.NewColumn(name, values)
	case allBool && nullCount == 0:
		for i, s := range cells {
			values[i], _ = parseBool(s)
		}
		return domain.Column{Name: name, Kind: domain.KindBool, Values: values}
	default:
		for i, s := range cells {
			if !isNull[i] {
				values[i] = s
			}
		}
		return domain.NewColumn(name, values)
	}
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "True", "TRUE", "true":
		return true, true
	case "False", "FALSE", "false":
		return false, true
	default:
		return false, false
	}
}
