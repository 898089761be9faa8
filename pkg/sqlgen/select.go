package sqlgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/relsql/pkg/core"
)

// selectBody renders a select without wrapping it as a derived table.
func (r *renderer) selectBody(s *core.SelectExpr) {
	r.Write("SELECT ")
	if s.Distinct {
		r.Write("DISTINCT ")
	}
	if h := r.d.TopHandler(); h != nil {
		h(r, s)
	}

	if len(s.Projection) == 0 {
		r.Write("1")
	}
	for i, item := range s.Projection {
		if i > 0 {
			r.Write(", ")
		}
		if h := r.d.ProjectionHandler(); h != nil {
			h(r, item)
		} else {
			r.DefaultProjection(item)
		}
	}

	r.from(s)

	if s.Predicate != nil {
		r.Newline()
		r.Write("WHERE ")
		r.Visit(s.Predicate)
	}
	if len(s.GroupBy) > 0 {
		r.Newline()
		r.Write("GROUP BY ")
		r.VisitList(s.GroupBy, ", ")
	}
	if s.Having != nil {
		r.Newline()
		r.Write("HAVING ")
		r.Visit(s.Having)
	}

	if h := r.d.OrderByHandler(); h != nil {
		h(r, s)
	} else {
		r.DefaultOrderBy(s)
	}
	if h := r.d.LimitOffsetHandler(); h != nil {
		h(r, s)
	}

	if s.SetOp != nil && s.SetOp.Right != nil {
		r.Newline()
		r.Write(s.SetOp.Kind.String())
		r.Newline()
		r.selectBody(s.SetOp.Right)
	}
}

func (r *renderer) from(s *core.SelectExpr) {
	if !s.HasFrom() {
		if h := r.d.PseudoFromHandler(); h != nil {
			h(r)
		}
		return
	}
	r.Newline()
	r.Write("FROM ")
	for i, src := range s.Tables {
		if i > 0 {
			r.Write(",")
			r.Newline()
		}
		r.VisitSource(src)
	}
	for _, j := range s.Joins {
		r.Newline()
		if h := r.d.JoinHandler(); h != nil && h(r, j) {
			continue
		}
		r.DefaultJoin(j)
	}
}

// DefaultProjection renders the expression and its alias. The alias is
// omitted when it repeats the column name. A boolean COALESCE is cast so
// engines without a boolean type keep the projected type.
func (r *renderer) DefaultProjection(item core.ProjectionItem) {
	if b, ok := item.Expr.(*core.BinaryExpr); ok && b.IsCoalesce() && b.Type.IsBool() {
		storeType := b.Type.StoreType
		if storeType == "" {
			storeType = r.d.BoolStoreType
		}
		r.Write("CAST(")
		r.Visit(b)
		r.Write(" AS " + storeType + ")")
	} else {
		r.Visit(item.Expr)
	}

	if item.Alias == "" {
		return
	}
	if col, ok := item.Expr.(*core.ColumnRef); ok && col.Column == item.Alias {
		return
	}
	r.Write(r.AliasSeparator() + r.Delimit(item.Alias))
}

// DefaultOrderBy writes ORDER BY over the non-constant orderings, or nothing.
func (r *renderer) DefaultOrderBy(s *core.SelectExpr) {
	orderings := core.NonConstantOrderings(s.OrderBy)
	if len(orderings) == 0 {
		return
	}
	r.Newline()
	r.Write("ORDER BY ")
	for i, o := range orderings {
		if i > 0 {
			r.Write(", ")
		}
		if h := r.d.OrderingHandler(); h != nil {
			h(r, o)
		} else {
			r.DefaultOrdering(o)
		}
	}
}

// DefaultOrdering renders the expression followed by DESC when descending.
func (r *renderer) DefaultOrdering(o core.Ordering) {
	r.Visit(o.Expr)
	if o.Descending {
		r.Write(" DESC")
	}
}

// ---------- Sources and joins ----------

// VisitSource renders a table, derived table or raw SQL source with its alias.
func (r *renderer) VisitSource(src core.TableSource) {
	switch n := src.(type) {
	case *core.TableExpr:
		r.Write(r.DelimitQualified(n.Schema, n.Name))
	case *core.SelectExpr:
		r.subquery(n)
	case *core.FromSQLExpr:
		r.fromSQL(n)
	default:
		r.fail(fmt.Errorf("%w: %T", ErrUnsupportedNode, src))
		return
	}
	if alias := src.SourceAlias(); alias != "" {
		r.Write(r.AliasSeparator() + r.Delimit(alias))
	}
}

// fromSQL nests raw SQL as a derived table, substituting {n} with the
// rendered arguments. Arguments render where their token occurs, left to
// right, so positional placeholders bind in text order and a repeated {n}
// binds once per occurrence.
func (r *renderer) fromSQL(f *core.FromSQLExpr) {
	if err := CheckComposable(f.SQL); err != nil {
		r.fail(err)
		return
	}
	sql := f.SQL
	if len(f.Args) > 0 {
		sql = r.substituteArgs(sql, f.Args)
	}
	r.Write("(")
	r.Newline()
	r.Indented(func() { r.WriteLines(strings.TrimRight(sql, "\r\n")) })
	r.Newline()
	r.Write(")")
}

// substituteArgs replaces each {n} token with args[n]. Tokens whose index is
// out of range are kept verbatim.
func (r *renderer) substituteArgs(sql string, args []core.Expr) string {
	var b strings.Builder
	for i := 0; i < len(sql); {
		if sql[i] != '{' {
			b.WriteByte(sql[i])
			i++
			continue
		}
		j := i + 1
		for j < len(sql) && sql[j] >= '0' && sql[j] <= '9' {
			j++
		}
		if j == i+1 || j >= len(sql) || sql[j] != '}' {
			b.WriteByte(sql[i])
			i++
			continue
		}
		n, err := strconv.Atoi(sql[i+1 : j])
		if err != nil || n >= len(args) {
			b.WriteString(sql[i : j+1])
			i = j + 1
			continue
		}
		arg := args[n]
		b.WriteString(r.Capture(func() { r.Visit(arg) }))
		i = j + 1
	}
	return b.String()
}

// DefaultJoin renders one join with its keywords.
func (r *renderer) DefaultJoin(j *core.Join) {
	if j.Kind.RequiresOn() && j.On == nil {
		r.fail(fmt.Errorf("%w: %s join", ErrMissingJoinPredicate, j.Kind))
		return
	}
	switch j.Kind {
	case core.JoinInner:
		r.Write("INNER JOIN ")
	case core.JoinLeft:
		r.Write("LEFT JOIN ")
	case core.JoinCross:
		r.Write("CROSS JOIN ")
	case core.JoinCrossApply:
		r.Write("CROSS APPLY ")
	case core.JoinOuterApply:
		r.Write("OUTER APPLY ")
	default:
		r.fail(fmt.Errorf("%w: join kind %d", ErrUnsupportedNode, j.Kind))
		return
	}
	r.VisitSource(j.Table)
	if j.Kind.RequiresOn() {
		r.Write(" ON ")
		r.Visit(j.On)
	}
}
