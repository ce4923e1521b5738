// Package config loads quickview settings from TOML, YAML or JSON files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dhamidi/quickview/java"
	"github.com/dhamidi/quickview/java/scanner"
)

// Config holds all configuration options.
type Config struct {
	// Extractor names the declaration extractor: "regex" or "treesitter".
	Extractor string `koanf:"extractor"`

	// Root is the project root used for inheritance lookups. Empty means
	// the directory of the file being analysed.
	Root string `koanf:"root"`

	// Exclude holds doublestar globs relative to the root.
	Exclude []string `koanf:"exclude"`

	RespectGitignore bool `koanf:"respect_gitignore"`

	Output OutputConfig `koanf:"output"`
	Index  IndexConfig  `koanf:"index"`
	Watch  WatchConfig  `koanf:"watch"`
	Log    LogConfig    `koanf:"log"`
}

type OutputConfig struct {
	Format string `koanf:"format"` // text, markdown, json, yaml
	Color  bool   `koanf:"color"`
}

type IndexConfig struct {
	// Workers bounds parallel file reads; zero means one per CPU.
	Workers int `koanf:"workers"`
}

type WatchConfig struct {
	DebounceMS int `koanf:"debounce_ms"`
}

type LogConfig struct {
	Verbosity int    `koanf:"verbosity"`
	File      string `koanf:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Extractor:        "regex",
		RespectGitignore: true,
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
	}
}

// FileNames are searched, in order, by LoadOrDefault.
var FileNames = []string{
	"quickview.toml",
	".quickview.toml",
	"quickview.yaml",
	"quickview.yml",
	"quickview.json",
}

// Load loads configuration from a file on top of the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the first config file found in dir, or returns the
// defaults when there is none.
func LoadOrDefault(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return DefaultConfig(), nil
}

func (c *Config) Validate() error {
	if _, err := c.NewExtractor(); err != nil {
		return err
	}
	if c.Index.Workers < 0 {
		return fmt.Errorf("index.workers must not be negative")
	}
	return nil
}

// NewExtractor returns the configured declaration extractor.
func (c *Config) NewExtractor() (java.Extractor, error) {
	switch strings.ToLower(c.Extractor) {
	case "", "regex":
		return java.RegexExtractor{}, nil
	case "treesitter", "tree-sitter":
		return java.TreeSitterExtractor{}, nil
	}
	return nil, fmt.Errorf("unknown extractor %q", c.Extractor)
}

// NewFilter returns the path filter for root.
func (c *Config) NewFilter(root string) (*scanner.Filter, error) {
	return scanner.NewFilter(root, c.Exclude, c.RespectGitignore)
}

func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
