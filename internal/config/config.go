// Package config loads user-overridable settings from a .javagraph.yml
// file in the corpus root. Missing or invalid files fall back to defaults.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up in the corpus root.
const ConfigFileName = ".javagraph.yml"

// Config holds indexing settings.
type Config struct {
	// Workers bounds the parallel extraction stage. Default: NumCPU.
	Workers *int `yaml:"workers"`

	// MaxChunkLines is the method-splitting threshold for chunking.
	// Unset or non-positive defers to the chunker's built-in default.
	MaxChunkLines *int `yaml:"max_chunk_lines"`

	// DBPath overrides the SQLite output path.
	// Default: <root>/.javagraph.db.
	DBPath string `yaml:"db_path"`

	// Ignore adds glob patterns to the built-in discovery ignore set.
	Ignore []string `yaml:"ignore"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{}
}

// Load reads ConfigFileName from the given directory. Returns defaults if
// the file does not exist or cannot be parsed.
func Load(dir string) *Config {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default()
	}
	return cfg
}

// EffectiveWorkers returns the configured worker count, or NumCPU.
func (c *Config) EffectiveWorkers() int {
	if c.Workers != nil && *c.Workers > 0 {
		return *c.Workers
	}
	return runtime.NumCPU()
}

// EffectiveMaxChunkLines returns the configured split threshold, or 0
// when unset. Zero tells chunk.NewChunker to apply its own default, so
// the threshold constant lives in one place.
func (c *Config) EffectiveMaxChunkLines() int {
	if c.MaxChunkLines != nil && *c.MaxChunkLines > 0 {
		return *c.MaxChunkLines
	}
	return 0
}

// EffectiveDBPath returns the configured database path, or the default
// under the corpus root.
func (c *Config) EffectiveDBPath(root string) string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(root, ".javagraph.db")
}
