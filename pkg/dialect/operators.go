package dialect

import (
	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/spi"
	"github.com/leapstack-labs/relsql/pkg/token"
)

// NullsFirstOnAscending appends NULLS FIRST to ascending orderings only.
// Descending orderings already place nulls first on engines that sort them last.
func NullsFirstOnAscending(g spi.GeneratorOps, o core.Ordering) {
	g.DefaultOrdering(o)
	if !o.Descending {
		g.Write(" NULLS FIRST")
	}
}

// isBitwise reports whether b combines integers bit by bit.
// AND/OR over a known non-boolean type are bitwise as well.
func isBitwise(b *core.BinaryExpr) bool {
	if b.Op.IsBitwise() {
		return true
	}
	return b.Op.IsLogical() && b.Type != nil && b.Type.Kind != core.KindUnknown && !b.Type.IsBool()
}

// LowerBitwise rewrites bitwise operators and modulo for dialects without them:
//
//	a & b  ->  BITAND(a, b)
//	a | b  ->  a - BITAND(a, b) + b
//	a ^ b  ->  a + b - 2 * BITAND(a, b)
//	a % b  ->  MOD(a, b)
func LowerBitwise(g spi.GeneratorOps, b *core.BinaryExpr) bool {
	switch {
	case b.Op == token.PERCENT:
		g.Write("MOD(")
		g.Visit(b.Left)
		g.Write(", ")
		g.Visit(b.Right)
		g.Write(")")
		return true
	case !isBitwise(b):
		return false
	}

	bitand := func() {
		g.Write("BITAND(")
		g.Visit(b.Left)
		g.Write(", ")
		g.Visit(b.Right)
		g.Write(")")
	}

	switch b.Op {
	case token.AMPERSAND, token.AND:
		bitand()
	case token.PIPE, token.OR:
		visitOperand(g, b.Left)
		g.Write(" - ")
		bitand()
		g.Write(" + ")
		visitOperand(g, b.Right)
	case token.CARET:
		visitOperand(g, b.Left)
		g.Write(" + ")
		visitOperand(g, b.Right)
		g.Write(" - 2 * ")
		bitand()
	default:
		return false
	}
	return true
}

// visitOperand parenthesizes nested binary operands the way the default binary rendering does.
func visitOperand(g spi.GeneratorOps, e core.Expr) {
	if nb, ok := e.(*core.BinaryExpr); ok && !nb.IsCoalesce() {
		g.Write("(")
		g.Visit(e)
		g.Write(")")
		return
	}
	g.Visit(e)
}
