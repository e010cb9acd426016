// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/muninn-kg/muninn/internal/config"
)

var (
	// Global flags
	graphName     string // Named graph from config
	graphPathFlag string // Explicit path (rare)
	configPath    string

	// Resolved values
	resolvedGraphPath string
	cfg               *config.Config
	logger            *log.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "muninn",
	Short: "Muninn - A Logseq knowledge graph indexer",
	Long: `Muninn ingests a Logseq graph directory into a document store and
builds a knowledge graph of pages and blocks connected by tags,
wikilinks, and block hierarchy.

Named for Odin's raven Muninn (memory), who flew across the world
each day and brought everything he saw back home.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: false,
		})

		// Commands that don't touch a graph skip resolution
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Resolve graph path: explicit path > named graph > default
		if graphPathFlag != "" {
			resolvedGraphPath = graphPathFlag
		} else {
			resolvedGraphPath, err = cfg.GetGraphPath(graphName)
			if err != nil {
				return fmt.Errorf(`no graph specified

Either:
  1. Use --graph <name> (from config)
  2. Use --graph-path /path/to/graph
  3. Set default_graph in ~/.config/muninn/config.toml`)
			}
		}

		if _, err := os.Stat(resolvedGraphPath); os.IsNotExist(err) {
			return fmt.Errorf("graph directory not found: %s", resolvedGraphPath)
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&graphName, "graph", "g", "", "Named graph from config")
	rootCmd.PersistentFlags().StringVar(&graphPathFlag, "graph-path", "", "Explicit path to graph directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
}

// getGraphPath returns the resolved graph path.
func getGraphPath() string {
	return resolvedGraphPath
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

func loadGlobalConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}
