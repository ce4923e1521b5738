package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/quickview/java"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "regex", cfg.Extractor)
	assert.True(t, cfg.RespectGitignore)
	assert.Empty(t, cfg.Exclude)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce())
	require.NoError(t, cfg.Validate())
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "quickview.toml",
			content: `
extractor = "treesitter"
exclude = ["gen/**"]
respect_gitignore = false

[output]
format = "json"
color = false

[index]
workers = 3

[watch]
debounce_ms = 250

[log]
verbosity = 2
`,
		},
		{
			name: "quickview.yaml",
			content: `
extractor: treesitter
exclude: ["gen/**"]
respect_gitignore: false
output:
  format: json
  color: false
index:
  workers: 3
watch:
  debounce_ms: 250
log:
  verbosity: 2
`,
		},
		{
			name: "quickview.json",
			content: `{
  "extractor": "treesitter",
  "exclude": ["gen/**"],
  "respect_gitignore": false,
  "output": {"format": "json", "color": false},
  "index": {"workers": 3},
  "watch": {"debounce_ms": 250},
  "log": {"verbosity": 2}
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.name)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, "treesitter", cfg.Extractor)
			assert.Equal(t, []string{"gen/**"}, cfg.Exclude)
			assert.False(t, cfg.RespectGitignore)
			assert.Equal(t, "json", cfg.Output.Format)
			assert.False(t, cfg.Output.Color)
			assert.Equal(t, 3, cfg.Index.Workers)
			assert.Equal(t, 250*time.Millisecond, cfg.Debounce())
			assert.Equal(t, 2, cfg.Log.Verbosity)

			extractor, err := cfg.NewExtractor()
			require.NoError(t, err)
			assert.IsType(t, java.TreeSitterExtractor{}, extractor)
		})
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quickview.toml")
	require.NoError(t, os.WriteFile(path, []byte("root = \"/src\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/src", cfg.Root)
	assert.Equal(t, "regex", cfg.Extractor)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "quickview.toml")
	require.NoError(t, os.WriteFile(bad, []byte("extractor = \"javac\"\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "unknown extractor")
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOrDefault(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".quickview.toml"), []byte("extractor = \"treesitter\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quickview.json"), []byte(`{"extractor": "regex", "root": "json"}`), 0o644))
	cfg, err = LoadOrDefault(dir)
	require.NoError(t, err)
	assert.Equal(t, "treesitter", cfg.Extractor)
	assert.Empty(t, cfg.Root)
}
