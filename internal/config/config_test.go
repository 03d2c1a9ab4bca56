package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, "http://example.org/stottr/", cfg.DefaultPrefix)
	require.Equal(t, 1000, cfg.Parquet.RowGroupSize)
	require.NotNil(t, cfg.LanguageTags)
}

func TestLoadOverridesDefaults(t *testing.T) {
	doc := `
default_prefix = "http://example.com/ns/"
cache_dir = "/tmp/stottr"

[language_tags]
label = "en"

[parquet]
row_group_size = 5000
`
	cfg, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, "http://example.com/ns/", cfg.DefaultPrefix)
	require.Equal(t, "/tmp/stottr", cfg.CacheDir)
	require.Equal(t, "en", cfg.LanguageTags["label"])
	require.Equal(t, 5000, cfg.Parquet.RowGroupSize)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/path/stottr.toml")
	require.Error(t, err)
}
