// Package loader reads dataset files (CSV, Parquet, XLSX) into in-memory tables.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dfguard/dfguard/internal/domain"
)

// Loader implements domain.TableLoader for every supported format.
type Loader struct{}

func New() *Loader {
	return &Loader{}
}

// Load reads path into a table. Missing files, empty files and unknown
// formats are reported with the matching domain sentinel error.
func (l *Loader) Load(ctx context.Context, path string, opts domain.LoadOptions) (*domain.Table, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrUnsupportedFormat, path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyFile, path)
	}

	format, err := Detect(path)
	if err != nil {
		return nil, err
	}
	opts = withDefaults(opts)

	var table *domain.Table
	switch format {
	case FormatCSV:
		table, err = readCSVFile(ctx, path, info.Size(), opts)
	case FormatParquet:
		table, err = readParquet(ctx, path)
	case FormatXLSX:
		table, err = readXLSX(ctx, path, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s %s: %w", format, path, err)
	}
	return table, nil
}

func withDefaults(opts domain.LoadOptions) domain.LoadOptions {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.NullValues == nil {
		opts.NullValues = domain.DefaultNullValues
	}
	return opts
}
