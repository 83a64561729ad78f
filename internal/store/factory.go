package store

import (
	"fmt"

	"github.com/baristalabs/mastrena/internal/config"
)

// Open constructs the store selected by the storage configuration.
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "memory", "":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
