package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dfguard/dfguard/internal/domain"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config file names, in lookup order within a directory.
var fileNames = []string{".dfguard.yaml", ".dfguard.yml", ".dfguard.toml"}

// FileLoader implements domain.ConfigLoader by reading .dfguard.yaml or
// .dfguard.toml from the dataset directory, then from each fallback directory.
type FileLoader struct {
	fallbacks []string
}

// New creates a FileLoader. fallbacks are searched, in order, when the
// dataset directory has no config file.
func New(fallbacks ...string) *FileLoader {
	return &FileLoader{fallbacks: fallbacks}
}

// Load returns DefaultConfig overlaid with the first config file found.
// Returns DefaultConfig if no file exists.
func (l *FileLoader) Load(dir string) (domain.ProjectConfig, error) {
	path, ok := l.find(dir)
	if !ok {
		return domain.DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ProjectConfig{}, err
	}

	name := filepath.Base(path)
	var cfg domain.ProjectConfig
	if filepath.Ext(path) == ".toml" {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	// Validate before merging so typos in the raw file are caught.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	return domain.DefaultConfig().Merge(cfg), nil
}

// find returns the first existing config file under dir or a fallback.
func (l *FileLoader) find(dir string) (string, bool) {
	dirs := append([]string{dir}, l.fallbacks...)
	for _, d := range dirs {
		if d == "" {
			continue
		}
		for _, name := range fileNames {
			path := filepath.Join(d, name)
			info, err := os.Stat(path)
			if err == nil && !info.IsDir() {
				return path, true
			}
		}
	}
	return "", false
}
