package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/service"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config selects and locates the expense store.
type Config struct {
	Backend string
	Path    string
}

// Open creates the configured store. SQLite stores are migrated before
// they are returned.
func Open(ctx context.Context, cfg Config) (service.Store, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return NewFileStore(cfg.Path)
	case BackendSQLite:
		store, err := NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil
	}
	return nil, fmt.Errorf("%w: %q", common.ErrUnknownBackend, cfg.Backend)
}
