package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/relsql/pkg/update"
)

var (
	// ErrMissingResultSet is returned when the database returns fewer result
	// sets or rows than the batch expects.
	ErrMissingResultSet = errors.New("batch returned fewer results than expected")

	// ErrRowCountMismatch is returned when a multi-row write affects an
	// unexpected number of rows.
	ErrRowCountMismatch = errors.New("affected row count does not match batch")
)

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// ExecBatch executes a write batch.
//
// Dialects that return multiple result sets receive the combined batch text in
// one round trip and results are read with Rows.NextResultSet. Other dialects
// run each statement on its own inside a transaction.
func (b *BaseSQLAdapter) ExecBatch(ctx context.Context, batch *update.Batch) (*BatchResult, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	result := &BatchResult{Commands: make([]CommandResult, batch.Len())}

	if batch.Dialect().Batch.MultipleResultSets {
		if err := b.execCombined(ctx, batch, result); err != nil {
			return nil, err
		}
		return result, nil
	}

	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	for i, stmt := range batch.Statements() {
		if err := b.execStatement(ctx, tx, stmt, result); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("statement %d on %s: %w", i, stmt.Table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit batch: %w", err)
	}
	return result, nil
}

func (b *BaseSQLAdapter) execCombined(ctx context.Context, batch *update.Batch, result *BatchResult) error {
	cmd := batch.Command()
	b.logCommand("executing batch", cmd.SQL, cmd.Parameters)

	rows, err := b.DB.QueryContext(ctx, cmd.SQL, b.Args(cmd.Parameters)...)
	if err != nil {
		return fmt.Errorf("failed to execute batch: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for i, m := range batch.ResultSets() {
		if i > 0 && !rows.NextResultSet() {
			if err := rows.Err(); err != nil {
				return fmt.Errorf("failed to advance result set: %w", err)
			}
			return fmt.Errorf("%w: result set %d", ErrMissingResultSet, i)
		}
		if err := readResult(rows, m, result); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (b *BaseSQLAdapter) execStatement(ctx context.Context, q execQuerier, stmt update.Statement, result *BatchResult) error {
	args := b.Args(stmt.Parameters)
	b.logCommand("executing batch statement", stmt.SQL, stmt.Parameters)

	if stmt.Result == update.ResultCapture {
		rows, err := q.QueryContext(ctx, stmt.SQL, args...)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()
		m := update.ResultSetMapping{Commands: stmt.Commands, Kind: stmt.Result, Columns: stmt.ReadColumns}
		if err := readResult(rows, m, result); err != nil {
			return err
		}
		return rows.Err()
	}

	res, err := q.ExecContext(ctx, stmt.SQL, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	b.logger().Debug("statement applied", slog.String("table", stmt.Table), slog.Int64("rows_affected", n))
	return assignRowCount(stmt.Commands, n, result)
}

// readResult consumes one result set: a row of read columns per command, or
// a single row-count row.
func readResult(rows *sql.Rows, m update.ResultSetMapping, result *BatchResult) error {
	if m.Kind == update.ResultRowCount {
		if !rows.Next() {
			return fmt.Errorf("%w: missing row count", ErrMissingResultSet)
		}
		var n int64
		if err := rows.Scan(&n); err != nil {
			return fmt.Errorf("failed to scan row count: %w", err)
		}
		return assignRowCount(m.Commands, n, result)
	}

	for _, idx := range m.Commands {
		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return err
			}
			return fmt.Errorf("%w: no values for command %d", ErrMissingResultSet, idx)
		}
		values := make([]any, len(m.Columns))
		ptrs := make([]any, len(m.Columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("failed to scan captured values: %w", err)
		}
		captured := make(map[string]any, len(m.Columns))
		for i, name := range m.Columns {
			captured[name] = values[i]
		}
		result.Commands[idx] = CommandResult{Values: captured, RowsAffected: 1}
	}
	return nil
}

// assignRowCount records n for a single command. A multi-row statement must
// affect exactly one row per command.
func assignRowCount(commands []int, n int64, result *BatchResult) error {
	if len(commands) == 1 {
		result.Commands[commands[0]].RowsAffected = n
		return nil
	}
	if n != int64(len(commands)) {
		return fmt.Errorf("%w: expected %d, got %d", ErrRowCountMismatch, len(commands), n)
	}
	for _, idx := range commands {
		result.Commands[idx].RowsAffected = 1
	}
	return nil
}

// RowsAffected sums the affected rows of every command.
func (r *BatchResult) RowsAffected() int64 {
	var total int64
	for _, c := range r.Commands {
		total += c.RowsAffected
	}
	return total
}

// Confirmed reports whether every command affected at least one row.
func (r *BatchResult) Confirmed() bool {
	for _, c := range r.Commands {
		if c.RowsAffected == 0 {
			return false
		}
	}
	return true
}

