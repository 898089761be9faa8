// Package spi provides Service Provider Interface types for dialect render
// hooks to interact with the SQL generator without circular dependencies.
//
// A dialect supplies only the hooks that differ from the shared algorithm.
// Every hook receives GeneratorOps, which exposes the generator's output
// primitives and the Default* fallbacks, so an override handles its special
// cases and delegates everything else.
package spi

import (
	"log/slog"

	"github.com/leapstack-labs/relsql/pkg/core"
)

// GeneratorOps exposes generator operations to dialect render hooks.
type GeneratorOps interface {
	// Output
	Write(s string)
	Newline()
	Indented(fn func())

	// Sub-generators
	Visit(e core.Expr)
	VisitList(exprs []core.Expr, sep string)
	VisitSource(src core.TableSource)

	// Formatting helpers
	Delimit(name string) string
	DelimitQualified(schema, name string) string
	AliasSeparator() string
	Literal(value any, t *core.TypeMapping) string

	// Shared defaults, for overrides to fall back on
	DefaultOrdering(o core.Ordering)
	DefaultOrderBy(s *core.SelectExpr)
	DefaultOperator(b *core.BinaryExpr) string
	DefaultBinary(b *core.BinaryExpr)
	DefaultFunction(f *core.FuncCall)
	DefaultJoin(j *core.Join)
	DefaultProjection(item core.ProjectionItem)

	// Logger returns the generator's logger (never nil).
	Logger() *slog.Logger
}

// TopHandler renders anything between SELECT [DISTINCT] and the projection.
type TopHandler func(g GeneratorOps, s *core.SelectExpr)

// LimitOffsetHandler renders paging after the ORDER BY clause.
type LimitOffsetHandler func(g GeneratorOps, s *core.SelectExpr)

// OrderingHandler renders a single ORDER BY item.
type OrderingHandler func(g GeneratorOps, o core.Ordering)

// OrderByHandler renders the whole ORDER BY clause, including the keywords.
type OrderByHandler func(g GeneratorOps, s *core.SelectExpr)

// OperatorHandler returns the SQL token for a binary operator.
type OperatorHandler func(g GeneratorOps, b *core.BinaryExpr) string

// BinaryHandler renders a binary expression.
// It returns false to let the generator use the default rendering.
type BinaryHandler func(g GeneratorOps, b *core.BinaryExpr) bool

// FunctionHandler renders a function call.
// It returns false to let the generator use the default rendering.
type FunctionHandler func(g GeneratorOps, f *core.FuncCall) bool

// PseudoFromHandler renders the FROM clause of a select with no table source.
type PseudoFromHandler func(g GeneratorOps)

// JoinHandler renders one join, including its leading keywords.
// It returns false to let the generator use the default rendering.
type JoinHandler func(g GeneratorOps, j *core.Join) bool

// ProjectionHandler renders one projected expression with its alias.
type ProjectionHandler func(g GeneratorOps, item core.ProjectionItem)
