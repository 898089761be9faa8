// Package sqlgen renders logical plans into SQL text with ordered parameters.
//
// The generator walks a core.SelectExpr tree once, writing into a Printer.
// Every dialect-sensitive step consults the dialect's render hooks first and
// falls back to the shared default rendering, which hooks can also call
// through spi.GeneratorOps.
package sqlgen

import (
	"log/slog"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
)

// Generator renders plans for one dialect. It holds no per-render state and
// is safe for concurrent use.
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

// New creates a generator for the dialect.
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

// Logger returns the generator's logger.
func (g *Generator) Logger() *slog.Logger {
	return g.logger
}

// Generate renders a select and returns its SQL text and parameters.
func (g *Generator) Generate(sel *core.SelectExpr) (*core.Command, error) {
	p := NewPrinter(g.dialect)
	if err := g.RenderSelect(p, sel); err != nil {
		return nil, err
	}
	cmd := p.Command()
	g.logger.Debug("generated select",
		slog.String("dialect", g.dialect.Name),
		slog.Int("sql_length", len(cmd.SQL)),
		slog.Int("parameters", len(cmd.Parameters)))
	return cmd, nil
}

// GenerateExpr renders a standalone expression.
func (g *Generator) GenerateExpr(e core.Expr) (*core.Command, error) {
	p := NewPrinter(g.dialect)
	if err := g.RenderExpr(p, e); err != nil {
		return nil, err
	}
	return p.Command(), nil
}

// RenderSelect writes a select into an existing printer.
// The select's alias is ignored at this level.
func (g *Generator) RenderSelect(p *Printer, sel *core.SelectExpr) error {
	r := g.newRenderer(p)
	r.selectBody(sel)
	return r.err
}

// RenderExpr writes an expression into an existing printer.
func (g *Generator) RenderExpr(p *Printer, e core.Expr) error {
	r := g.newRenderer(p)
	r.Visit(e)
	return r.err
}

func (g *Generator) newRenderer(p *Printer) *renderer {
	return &renderer{Printer: p, d: g.dialect, logger: g.logger}
}
