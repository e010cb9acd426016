// Package config handles global muninn configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Store backend names accepted in configuration.
const (
	BackendMeilisearch = "meilisearch"
	BackendSQLite      = "sqlite"
)

// Config is the global muninn configuration, loaded from config.toml.
type Config struct {
	// DefaultGraph is the name of the default graph (from Graphs).
	DefaultGraph string `toml:"default_graph"`

	// Graphs maps graph names to directory paths.
	Graphs map[string]string `toml:"graphs"`

	// Store configures the document store backend.
	Store StoreConfig `toml:"store"`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	// Backend is "meilisearch" or "sqlite".
	Backend string `toml:"backend"`

	// URL is the Meilisearch endpoint. Overridden by MEILISEARCH_URL.
	URL string `toml:"url"`

	// APIKey is the Meilisearch API key. Overridden by MEILISEARCH_API_KEY.
	APIKey string `toml:"api_key"`

	// Path is the SQLite database path for the local backend.
	Path string `toml:"path"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendMeilisearch,
			URL:     "http://localhost:7700",
		},
	}
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(configDir, "muninn", "config.toml"), nil
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. Environment variables override the store endpoint
// and credentials.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if url := os.Getenv("MEILISEARCH_URL"); url != "" {
		cfg.Store.URL = url
	}
	if key := os.Getenv("MEILISEARCH_API_KEY"); key != "" {
		cfg.Store.APIKey = key
	}

	return cfg, nil
}

// GetGraphPath returns the directory for a named graph. If name is empty,
// the default graph is used.
func (c *Config) GetGraphPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultGraph
	}
	if name == "" {
		return "", fmt.Errorf("no default graph configured")
	}
	if path, ok := c.Graphs[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("graph '%s' not found in config", name)
}
