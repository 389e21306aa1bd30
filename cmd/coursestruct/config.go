package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config provides flag defaults from an optional TOML file. Flags win over
// config values.
type Config struct {
	// OutputDir is the default output directory for ingest and structure.
	OutputDir string `toml:"output_dir"`
	// CodesPath is the default lesson-code table location.
	CodesPath string `toml:"codes_path"`
	// Pretty enables pretty-printed JSON output by default.
	Pretty bool `toml:"pretty"`
	// Verbose enables debug logging by default.
	Verbose bool `toml:"verbose"`
}

// loadConfig reads the config file at path. An empty path yields the zero
// config; a named but unreadable or malformed file is an error.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
