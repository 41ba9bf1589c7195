package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dfguard/dfguard/internal/domain"
)

// Format is a supported dataset file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
	FormatXLSX    Format = "xlsx"
)

var (
	parquetMagic = []byte("PAR1")
	zipMagic     = []byte("PK\x03\x04")
)

// Detect sniffs the leading bytes of the file and falls back to the
// extension. Parquet and XLSX (zip) are recognized by content; anything
// else must carry a known extension.
func Detect(path string) (Format, error) {
	head, err := readHead(path, len(parquetMagic))
	if err != nil {
		return "", err
	}
	switch {
	case bytes.HasPrefix(head, parquetMagic):
		return FormatParquet, nil
	case bytes.HasPrefix(head, zipMagic):
		return FormatXLSX, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
}

func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:read], nil
}
