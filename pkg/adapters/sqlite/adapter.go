// Package sqlite provides an embedded SQLite executor for relsql batches,
// backed by the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/relsql/pkg/adapter"
	sqlitedialect "github.com/leapstack-labs/relsql/pkg/dialects/sqlite"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{
			Logger:     logger,
			SQLDialect: sqlitedialect.SQLite,
		},
	}
}

// Connect opens the database file named by cfg. DSN wins over Path; with
// neither set an in-memory database is used.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := dataSource(cfg)
	a.Logger.Debug("opening sqlite database", slog.String("path", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps in-memory databases and transactions on the
	// same underlying handle.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

func dataSource(cfg adapter.Config) string {
	switch {
	case cfg.DSN != "":
		return cfg.DSN
	case cfg.Path != "":
		return cfg.Path
	default:
		return MemoryPath
	}
}
