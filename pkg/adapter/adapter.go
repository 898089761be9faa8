// Package adapter provides database adapter interfaces used to execute
// rendered commands and write batches.
//
// This package contains the public contract that all database adapters must implement.
// Concrete adapter implementations are in pkg/adapters/ subdirectories.
package adapter

import (
	"context"
	"database/sql"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
	"github.com/leapstack-labs/relsql/pkg/update"
)

// Config is an alias for core.AdapterConfig.
type Config = core.AdapterConfig

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a command that doesn't return rows and reports the affected row count.
	Exec(ctx context.Context, cmd *core.Command) (int64, error)

	// Query executes a command that returns rows. The caller closes the rows.
	Query(ctx context.Context, cmd *core.Command) (*sql.Rows, error)

	// ExecBatch executes a write batch and maps its results back to the
	// batch's commands.
	ExecBatch(ctx context.Context, batch *update.Batch) (*BatchResult, error)

	// Dialect returns the SQL dialect used to render commands for this adapter.
	Dialect() *dialect.Dialect

	// SetLogParameterValues controls whether debug logs include parameter values.
	SetLogParameterValues(on bool)
}

// CommandResult is the outcome of one write command.
type CommandResult struct {
	// Values holds the read-back column values, keyed by column name.
	Values       map[string]any
	RowsAffected int64
}

// BatchResult holds one CommandResult per batch command, in append order.
type BatchResult struct {
	Commands []CommandResult
}
