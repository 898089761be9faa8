// Package update renders row-level writes into batched DML.
//
// A Batch collects inserts, updates and deletes and renders each logical write
// so that it yields exactly one confirmable result: the captured server-generated
// values when the write reads columns back, or the affected-row count otherwise.
// Consecutive inserts into the same table are folded into one multi-row
// statement when their column shape allows it.
package update

import (
	"errors"
	"log/slog"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
)

var (
	// ErrBatchUnsupported is returned when the dialect declares no capture strategy.
	ErrBatchUnsupported = errors.New("dialect does not support batched writes")

	// ErrNoRows is returned when a bulk insert is given no rows.
	ErrNoRows = errors.New("no rows to write")

	// ErrNoWriteColumns is returned for updates that set nothing.
	ErrNoWriteColumns = errors.New("update has no write columns")

	// ErrMissingCaptureType is returned when a read column has no store type
	// to declare in the capture structure.
	ErrMissingCaptureType = errors.New("read column has no store type")
)

// Generator creates batches for one dialect. It is safe for concurrent use;
// each Batch it creates is not.
type Generator struct {
	dialect *dialect.Dialect
	logger  *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a batch generator for the dialect.
func New(d *dialect.Dialect, opts ...Option) *Generator {
	g := &Generator{
		dialect: d,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Dialect returns the generator's dialect.
func (g *Generator) Dialect() *dialect.Dialect {
	return g.dialect
}

// NewBatch starts an empty batch.
func (g *Generator) NewBatch() (*Batch, error) {
	if !g.dialect.Batch.Supported() {
		return nil, ErrBatchUnsupported
	}
	return newBatch(g), nil
}

// RenderBulkInsert renders inserts of rows into one table and reports how
// the result sets map back to the rows.
func (g *Generator) RenderBulkInsert(table, schema string, rows []*core.ModificationCommand) (*core.Command, core.ResultGrouping, error) {
	b, err := g.NewBatch()
	if err != nil {
		return nil, core.GroupingSingleResultSet, err
	}
	grouping, err := b.AppendBulkInsert(table, schema, rows)
	if err != nil {
		return nil, core.GroupingSingleResultSet, err
	}
	return b.Command(), grouping, nil
}

// RenderCommands renders an ordered list of writes as one batch.
func (g *Generator) RenderCommands(cmds []*core.ModificationCommand) (*Batch, error) {
	b, err := g.NewBatch()
	if err != nil {
		return nil, err
	}
	if err := b.AppendCommands(cmds); err != nil {
		return nil, err
	}
	return b, nil
}
