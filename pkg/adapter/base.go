package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
	"github.com/leapstack-labs/relsql/pkg/paramlog"
)

// ErrNotConnected is returned when a command runs before Connect.
var ErrNotConnected = errors.New("database connection not established")

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Exec, Query and ExecBatch implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger

	// SQLDialect decides how parameters are bound and how batches are sent.
	SQLDialect *dialect.Dialect

	// LogParameterValues includes parameter values in debug logs.
	LogParameterValues bool
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		b.logger().Debug("closing database connection")
		return b.DB.Close()
	}
	return nil
}

// Dialect returns the adapter's SQL dialect.
func (b *BaseSQLAdapter) Dialect() *dialect.Dialect {
	return b.SQLDialect
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// Exec executes a command that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, cmd *core.Command) (int64, error) {
	if b.DB == nil {
		return 0, ErrNotConnected
	}
	b.logCommand("executing command", cmd.SQL, cmd.Parameters)
	res, err := b.DB.ExecContext(ctx, cmd.SQL, b.Args(cmd.Parameters)...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute SQL: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

// Query executes a command that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, cmd *core.Command) (*sql.Rows, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	b.logCommand("executing query", cmd.SQL, cmd.Parameters)
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, cmd.SQL, b.Args(cmd.Parameters)...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return rows, nil
}

// Args converts parameters to database/sql arguments. Dialects with named
// placeholders bind by name; the rest bind by position.
func (b *BaseSQLAdapter) Args(params []core.ParameterValue) []any {
	args := make([]any, len(params))
	named := b.SQLDialect != nil && b.SQLDialect.NamedParameters()
	for i, p := range params {
		if named {
			args[i] = sql.Named(p.Name, p.Value)
		} else {
			args[i] = p.Value
		}
	}
	return args
}

func (b *BaseSQLAdapter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

func (b *BaseSQLAdapter) logCommand(msg, sqlText string, params []core.ParameterValue) {
	b.logger().Debug(msg,
		slog.String("sql", sqlText),
		paramlog.Attr(params, paramlog.Options{Sensitive: b.LogParameterValues}))
}

// SetLogParameterValues controls whether debug logs include parameter values.
func (b *BaseSQLAdapter) SetLogParameterValues(on bool) {
	b.LogParameterValues = on
}
