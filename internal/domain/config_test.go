package domain_test

import (
	"testing"

	"github.com/dfguard/dfguard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, domain.DefaultMaxRows, cfg.MaxRows)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Contains(t, cfg.CSV.NullValues, "NA")
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestProjectConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.ProjectConfig
		wantErr string
	}{
		{"zero value", domain.ProjectConfig{}, ""},
		{"negative max rows", domain.ProjectConfig{MaxRows: -1}, "max_rows"},
		{"long delimiter", domain.ProjectConfig{CSV: domain.CSVConfig{Delimiter: ";;"}}, "delimiter"},
		{"unicode delimiter", domain.ProjectConfig{CSV: domain.CSVConfig{Delimiter: "¦"}}, ""},
		{"bad level", domain.ProjectConfig{Log: domain.LogConfig{Level: "loud"}}, "log.level"},
		{"bad format", domain.ProjectConfig{Log: domain.LogConfig{Format: "xml"}}, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestProjectConfig_Merge(t *testing.T) {
	base := domain.DefaultConfig()
	merged := base.Merge(domain.ProjectConfig{
		MaxRows: 10,
		CSV:     domain.CSVConfig{Delimiter: ";"},
		Log:     domain.LogConfig{Format: "json"},
	})

	assert.Equal(t, 10, merged.MaxRows)
	assert.Equal(t, ";", merged.CSV.Delimiter)
	assert.Equal(t, base.CSV.NullValues, merged.CSV.NullValues)
	assert.Equal(t, "warn", merged.Log.Level)
	assert.Equal(t, "json", merged.Log.Format)
	assert.Equal(t, ",", base.CSV.Delimiter, "base is untouched")
}

func TestProjectConfig_LoadOptions(t *testing.T) {
	cfg := domain.DefaultConfig().Merge(domain.ProjectConfig{CSV: domain.CSVConfig{Delimiter: "\t"}})
	opts := cfg.LoadOptions()
	assert.Equal(t, '\t', opts.Delimiter)
	assert.Equal(t, domain.DefaultMaxRows, opts.MaxRows)

	opts = domain.ProjectConfig{}.LoadOptions()
	assert.Equal(t, ',', opts.Delimiter)
}
