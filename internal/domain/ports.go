package domain

import (
	"context"
	"errors"
)

// Errors raised by table loaders before any rule runs.
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrEmptyFile         = errors.New("file is empty")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// LoadOptions tunes how a file is read into a table.
type LoadOptions struct {
	MaxRows    int
	Delimiter  rune
	NullValues []string
	// Progress enables a read progress bar on interactive terminals.
	Progress bool
}

// TableLoader reads a dataset file into an in-memory table.
type TableLoader interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Table, error)
}

// ConfigLoader reads project configuration for a dataset directory.
type ConfigLoader interface {
	Load(dir string) (ProjectConfig, error)
}

// RevisionLookup resolves the version-control revision a dataset belongs to.
type RevisionLookup interface {
	CommitHash(path string) (string, error)
}
