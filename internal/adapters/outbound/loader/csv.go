package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dfguard/dfguard/internal/domain"
)

const ctxCheckEvery = 1024

func readCSVFile(ctx context.Context, path string, size int64, opts domain.LoadOptions) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, done := withProgress(f, size, opts.Progress, "reading "+path)
	defer done()
	return readCSV(ctx, r, opts)
}

// readCSV parses delimited text with a header row. At most opts.MaxRows
// data rows are read when MaxRows is positive.
func readCSV(ctx context.Context, r io.Reader, opts domain.LoadOptions) (*domain.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = opts.Delimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no columns to parse", domain.ErrEmptyFile)
	}
	if err != nil {
		return nil, err
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var rows [][]string
	for opts.MaxRows <= 0 || len(rows) < opts.MaxRows {
		if len(rows)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record))
		}
		rows = append(rows, record)
	}

	return buildTable(header, rows, newNullSet(opts.NullValues))
}
