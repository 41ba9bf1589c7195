package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dfguard/dfguard/internal/domain"
)

// readXLSX reads the first sheet; its first row is the header.
func readXLSX(ctx context.Context, path string, opts domain.LoadOptions) (*domain.Table, error) {
	xlFile, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer xlFile.Close()

	sheetName := xlFile.GetSheetName(0)
	if sheetName == "" {
		sheetList := xlFile.GetSheetList()
		if len(sheetList) == 0 {
			return nil, errors.New("no sheets found in xlsx file")
		}
		sheetName = sheetList[0]
	}

	rows, err := xlFile.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q has no rows", domain.ErrEmptyFile, sheetName)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	header := rows[0]
	width := len(header)
	for _, row := range rows[1:] {
		width = max(width, len(row))
	}
	for len(header) < width {
		header = append(header, "")
	}
	return buildTable(header, rows[1:], newNullSet(opts.NullValues))
}
