// Package config loads the cmd/stottr front end's TOML configuration.
// Library packages (internal/expand, internal/store, internal/sparql)
// take plain Go options structs; config file parsing is a front-end
// concern only.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the top-level stottr TOML document.
type Config struct {
	DefaultPrefix string            `toml:"default_prefix"`
	CacheDir      string            `toml:"cache_dir"`
	LanguageTags  map[string]string `toml:"language_tags"`
	Parquet       ParquetConfig     `toml:"parquet"`
}

// ParquetConfig controls native Parquet export (internal/export).
type ParquetConfig struct {
	RowGroupSize int `toml:"row_group_size"`
}

// defaults is the front end's own set of fallbacks, applied before
// decoding so an absent config file and an empty one behave
// identically. They differ from the library fallbacks: ExpandDefault
// falls back to templates.DefaultPrefix, and an empty cache directory
// disables spilling.
func defaults() Config {
	return Config{
		DefaultPrefix: "http://example.org/stottr/",
		CacheDir:      ".stottr-cache",
		LanguageTags:  map[string]string{},
		Parquet:       ParquetConfig{RowGroupSize: 1000},
	}
}

// LoadFile opens the file at path and parses it as TOML.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open file %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads TOML content from r, filling in defaults for anything
// the document leaves unset.
func Load(r io.Reader) (Config, error) {
	cfg := defaults()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode error: %w", err)
	}
	if cfg.LanguageTags == nil {
		cfg.LanguageTags = map[string]string{}
	}
	if cfg.Parquet.RowGroupSize <= 0 {
		cfg.Parquet.RowGroupSize = 1000
	}
	return cfg, nil
}
