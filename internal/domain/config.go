package domain

import (
	"fmt"
	"unicode/utf8"
)

// DefaultMaxRows caps how many CSV rows are read into memory.
const DefaultMaxRows = 50000

// DefaultNullValues are the cell spellings treated as missing in text formats.
var DefaultNullValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}
	validLogFormats = []string{"text", "json"}
)

// ProjectConfig holds settings loaded from .dfguard.yaml or .dfguard.toml.
// Rule thresholds are fixed and deliberately absent here.
type ProjectConfig struct {
	MaxRows int       `yaml:"max_rows" toml:"max_rows" json:"max_rows"`
	CSV     CSVConfig `yaml:"csv"      toml:"csv"      json:"csv"`
	Log     LogConfig `yaml:"log"      toml:"log"      json:"log"`
}

// CSVConfig controls delimited-text parsing.
type CSVConfig struct {
	Delimiter  string   `yaml:"delimiter"   toml:"delimiter"   json:"delimiter,omitempty"`
	NullValues []string `yaml:"null_values" toml:"null_values" json:"null_values,omitempty"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `yaml:"level"  toml:"level"  json:"level,omitempty"`
	Format string `yaml:"format" toml:"format" json:"format,omitempty"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		MaxRows: DefaultMaxRows,
		CSV: CSVConfig{
			Delimiter:  ",",
			NullValues: DefaultNullValues,
		},
		Log: LogConfig{Level: "warn", Format: "text"},
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.MaxRows < 0 {
		return fmt.Errorf("max_rows must be >= 0 (got %d)", c.MaxRows)
	}
	if c.CSV.Delimiter != "" && utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv.delimiter must be a single character (got %q)", c.CSV.Delimiter)
	}
	if c.Log.Level != "" && !contains(validLogLevels, c.Log.Level) {
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	if c.Log.Format != "" && !contains(validLogFormats, c.Log.Format) {
		return fmt.Errorf("unknown log.format %q (valid: text, json)", c.Log.Format)
	}
	return nil
}

// Merge overlays the non-zero values of override onto c.
func (c ProjectConfig) Merge(override ProjectConfig) ProjectConfig {
	result := c
	if override.MaxRows != 0 {
		result.MaxRows = override.MaxRows
	}
	if override.CSV.Delimiter != "" {
		result.CSV.Delimiter = override.CSV.Delimiter
	}
	if len(override.CSV.NullValues) > 0 {
		result.CSV.NullValues = override.CSV.NullValues
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.Format != "" {
		result.Log.Format = override.Log.Format
	}
	return result
}

// LoadOptions derives loader options from the config.
func (c ProjectConfig) LoadOptions() LoadOptions {
	opts := LoadOptions{
		MaxRows:    c.MaxRows,
		Delimiter:  ',',
		NullValues: c.CSV.NullValues,
	}
	if r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter); c.CSV.Delimiter != "" {
		opts.Delimiter = r
	}
	return opts
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
