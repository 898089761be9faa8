package sqlgen

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
	"github.com/leapstack-labs/relsql/pkg/spi"
	"github.com/leapstack-labs/relsql/pkg/token"
)

// renderer is the per-render state handed to dialect hooks.
// The first error sticks; later output is still written but discarded by callers.
type renderer struct {
	*Printer
	d      *dialect.Dialect
	logger *slog.Logger
	err    error
}

var _ spi.GeneratorOps = (*renderer)(nil)

func (r *renderer) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// AliasSeparator returns the dialect's alias separator.
func (r *renderer) AliasSeparator() string {
	return r.d.AliasSeparator
}

// Logger returns the generator's logger.
func (r *renderer) Logger() *slog.Logger {
	return r.logger
}

// Visit renders an expression.
func (r *renderer) Visit(e core.Expr) {
	switch n := e.(type) {
	case nil:
		r.Write("NULL")
	case *core.ColumnRef:
		if n.Table != "" {
			r.Write(r.Delimit(n.Table) + ".")
		}
		r.Write(r.Delimit(n.Column))
	case *core.Literal:
		r.Write(r.Literal(n.Value, n.Type))
	case *core.Parameter:
		r.Write(r.AddParameter(n.Name, n.Value, n.Type))
	case *core.BinaryExpr:
		r.visitBinary(n)
	case *core.UnaryExpr:
		r.visitUnary(n)
	case *core.FuncCall:
		r.visitFunction(n)
	case *core.CastExpr:
		r.visitCast(n)
	case *core.CaseExpr:
		r.visitCase(n)
	case *core.InExpr:
		r.visitIn(n)
	case *core.IsNullExpr:
		r.Visit(n.Expr)
		if n.Not {
			r.Write(" IS NOT NULL")
		} else {
			r.Write(" IS NULL")
		}
	case *core.LikeExpr:
		r.visitLike(n)
	case *core.ExistsExpr:
		if n.Not {
			r.Write("NOT ")
		}
		r.Write("EXISTS ")
		r.subquery(n.Query)
	case *core.SubqueryExpr:
		r.subquery(n.Query)
	case *core.Fragment:
		r.Write(n.SQL)
	case *core.StarExpr:
		if n.Table != "" {
			r.Write(r.Delimit(n.Table) + ".")
		}
		r.Write("*")
	default:
		r.fail(fmt.Errorf("%w: %T", ErrUnsupportedNode, e))
	}
}

// VisitList renders expressions separated by sep.
func (r *renderer) VisitList(exprs []core.Expr, sep string) {
	for i, e := range exprs {
		if i > 0 {
			r.Write(sep)
		}
		r.Visit(e)
	}
}

// subquery renders a parenthesized, indented select.
func (r *renderer) subquery(s *core.SelectExpr) {
	r.Write("(")
	r.Newline()
	r.Indented(func() { r.selectBody(s) })
	r.Newline()
	r.Write(")")
}

// ---------- Operators ----------

func (r *renderer) visitBinary(b *core.BinaryExpr) {
	if h := r.d.BinaryHandler(); h != nil && h(r, b) {
		return
	}
	r.DefaultBinary(b)
}

// DefaultBinary renders COALESCE(a, b) or "a op b", parenthesizing nested
// non-coalesce binary operands.
func (r *renderer) DefaultBinary(b *core.BinaryExpr) {
	if b.IsCoalesce() {
		r.Write("COALESCE(")
		r.Visit(b.Left)
		r.Write(", ")
		r.Visit(b.Right)
		r.Write(")")
		return
	}
	r.operand(b.Left)
	r.Write(" " + r.operator(b) + " ")
	r.operand(b.Right)
}

func (r *renderer) operand(e core.Expr) {
	if nb, ok := e.(*core.BinaryExpr); ok && !nb.IsCoalesce() {
		r.Write("(")
		r.Visit(e)
		r.Write(")")
		return
	}
	r.Visit(e)
}

func (r *renderer) operator(b *core.BinaryExpr) string {
	if h := r.d.OperatorHandler(); h != nil {
		return h(r, b)
	}
	return r.DefaultOperator(b)
}

// DefaultOperator returns the ANSI token for b's operator. "+" over two
// string operands becomes the dialect's concatenation operator.
func (r *renderer) DefaultOperator(b *core.BinaryExpr) string {
	if b.Op == token.PLUS && r.d.ConcatOperator != "" && isStringTyped(b.Left) && isStringTyped(b.Right) {
		return r.d.ConcatOperator
	}
	return b.Op.String()
}

func isStringTyped(e core.Expr) bool {
	if t := core.TypeOf(e); t != nil {
		return t.IsString()
	}
	switch n := e.(type) {
	case *core.Literal:
		_, ok := n.Value.(string)
		return ok
	case *core.Parameter:
		_, ok := n.Value.(string)
		return ok
	}
	return false
}

func (r *renderer) visitUnary(u *core.UnaryExpr) {
	switch u.Op {
	case token.NOT:
		switch inner := u.Expr.(type) {
		case *core.InExpr:
			negated := *inner
			negated.Not = !inner.Not
			r.Visit(&negated)
		case *core.IsNullExpr:
			negated := *inner
			negated.Not = !inner.Not
			r.Visit(&negated)
		case *core.ExistsExpr:
			negated := *inner
			negated.Not = !inner.Not
			r.Visit(&negated)
		case *core.LikeExpr:
			negated := *inner
			negated.Not = !inner.Not
			r.Visit(&negated)
		default:
			r.Write("NOT (")
			r.Visit(u.Expr)
			r.Write(")")
		}
	case token.MINUS:
		r.Write("-")
		r.operand(u.Expr)
	default:
		r.fail(fmt.Errorf("%w: unary operator %s", ErrUnsupportedNode, u.Op))
	}
}

// ---------- Functions and scalar forms ----------

func (r *renderer) visitFunction(f *core.FuncCall) {
	if f.Schema == "" && f.Instance == nil {
		if h := r.d.FunctionHandler(f.Name); h != nil && h(r, f) {
			return
		}
	}
	if h := r.d.GenericFunctionHandler(); h != nil && h(r, f) {
		return
	}
	r.DefaultFunction(f)
}

// DefaultFunction renders schema.name(args), instance.name(args) or name(args).
// Names outside the dialect's builtin list are delimited.
func (r *renderer) DefaultFunction(f *core.FuncCall) {
	switch {
	case f.Schema != "":
		r.Write(r.Delimit(f.Schema) + "." + r.Delimit(f.Name))
	case f.Instance != nil:
		r.Visit(f.Instance)
		r.Write("." + f.Name)
	case r.d.IsBuiltinFunction(f.Name):
		r.Write(f.Name)
	default:
		r.Write(r.Delimit(f.Name))
	}
	if f.Niladic {
		return
	}
	r.Write("(")
	r.VisitList(f.Args, ", ")
	r.Write(")")
}

func (r *renderer) visitCast(c *core.CastExpr) {
	if c.Type == nil || c.Type.StoreType == "" {
		r.fail(ErrMissingStoreType)
		return
	}
	r.Write("CAST(")
	r.Visit(c.Expr)
	r.Write(" AS " + c.Type.StoreType + ")")
}

func (r *renderer) visitCase(c *core.CaseExpr) {
	r.Write("CASE")
	if c.Operand != nil {
		r.Write(" ")
		r.Visit(c.Operand)
	}
	r.Indented(func() {
		for _, w := range c.Whens {
			r.Newline()
			r.Write("WHEN ")
			r.Visit(w.Condition)
			r.Write(" THEN ")
			r.Visit(w.Result)
		}
		if c.Else != nil {
			r.Newline()
			r.Write("ELSE ")
			r.Visit(c.Else)
		}
	})
	r.Newline()
	r.Write("END")
}

func (r *renderer) visitIn(in *core.InExpr) {
	r.Visit(in.Expr)
	if in.Not {
		r.Write(" NOT")
	}
	r.Write(" IN ")
	if in.Query != nil {
		r.subquery(in.Query)
		return
	}
	r.Write("(")
	r.VisitList(in.Values, ", ")
	r.Write(")")
}

func (r *renderer) visitLike(l *core.LikeExpr) {
	r.Visit(l.Expr)
	if l.Not {
		r.Write(" NOT")
	}
	r.Write(" LIKE ")
	r.Visit(l.Pattern)
	if l.Escape != nil {
		r.Write(" ESCAPE ")
		r.Visit(l.Escape)
	}
}
