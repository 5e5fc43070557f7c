package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSourcesDefaults(t *testing.T) {
	got, err := LoadSources("")
	require.NoError(t, err)
	assert.Len(t, got, 15)
	assert.Equal(t, DefaultSources, got)

	got, err = LoadSources(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Len(t, got, 15)

	got[0] = "mutated"
	assert.Equal(t, "https://www.who.int/news-room/fact-sheets", DefaultSources[0])
}

func TestLoadSourcesFile(t *testing.T) {
	path := writeFile(t, `
sources:
  - https://example.org/a
  - "  "
  - http://example.org/b
`)

	got, err := LoadSources(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.org/a", "http://example.org/b"}, got)
}

func TestLoadSourcesErrors(t *testing.T) {
	tests := map[string]string{
		"bad yaml":   "sources: [",
		"bad scheme": "sources:\n  - ftp://example.org/a\n",
		"no host":    "sources:\n  - https://\n",
		"empty list": "sources: []\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSources(writeFile(t, content))
			require.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "json", "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "source", "https://example.org")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "https://example.org", line["source"])

	_, err = NewLogger(&buf, "xml", "info")
	require.Error(t, err)

	_, err = NewLogger(&buf, "text", "loud")
	require.Error(t, err)
}
