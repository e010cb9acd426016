package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GraphConfig is per-graph configuration from muninn.yaml in the graph
// directory. All fields are optional.
type GraphConfig struct {
	// IndexBlocks controls whether blocks are indexed in addition to
	// pages (default: true).
	IndexBlocks *bool `yaml:"index_blocks,omitempty"`

	// ExcludeDirectories are extra directory names skipped by the walker,
	// in addition to logseq/ and hidden directories.
	ExcludeDirectories []string `yaml:"exclude_directories,omitempty"`
}

// ShouldIndexBlocks returns the effective block-indexing default.
func (g *GraphConfig) ShouldIndexBlocks() bool {
	if g == nil || g.IndexBlocks == nil {
		return true
	}
	return *g.IndexBlocks
}

// Excludes returns the configured directory excludes.
func (g *GraphConfig) Excludes() []string {
	if g == nil {
		return nil
	}
	return g.ExcludeDirectories
}

// LoadGraphConfig loads muninn.yaml from the graph directory. A missing
// file yields an empty config.
func LoadGraphConfig(graphPath string) (*GraphConfig, error) {
	path := filepath.Join(graphPath, "muninn.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &GraphConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg GraphConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}
