package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/muninn-kg/muninn/internal/config"
	"github.com/muninn-kg/muninn/internal/store"
)

// openStore creates the document store selected by the config.
func openStore(cfg *config.Config, graphPath string) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMeilisearch:
		return store.NewMeili(cfg.Store.URL, cfg.Store.APIKey), nil
	case config.BackendSQLite:
		path := cfg.Store.Path
		if path == "" {
			path = filepath.Join(graphPath, ".muninn", "store.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
		return store.OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store backend '%s' (expected %s or %s)",
			cfg.Store.Backend, config.BackendMeilisearch, config.BackendSQLite)
	}
}
