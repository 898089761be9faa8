package core

import "github.com/leapstack-labs/relsql/pkg/token"

// ---------- Expression Types ----------

// ColumnRef represents a column reference qualified by a source alias.
type ColumnRef struct {
	Table  string // optional table/alias qualifier
	Column string
	Type   *TypeMapping
}

func (*ColumnRef) exprNode() {}

// Literal is a constant value inlined into SQL text.
// Value is one of nil, bool, the integer and float kinds, string, []byte,
// time.Time, uuid-like [16]byte, or a fmt.Stringer for decimals.
type Literal struct {
	Value any
	Type  *TypeMapping
}

func (*Literal) exprNode() {}

// Parameter is a value bound at execution time.
// Parameters sharing a Name are emitted once in the parameter list.
type Parameter struct {
	Name  string
	Value any
	Type  *TypeMapping
}

func (*Parameter) exprNode() {}

// BinaryExpr represents a binary operation, including AND/OR and null coalescing.
type BinaryExpr struct {
	Left  Expr
	Op    token.TokenType
	Right Expr
	Type  *TypeMapping
}

func (*BinaryExpr) exprNode() {}

// IsCoalesce reports whether the expression is a null-coalescing operation.
func (b *BinaryExpr) IsCoalesce() bool { return b.Op == token.COALESCE }

// UnaryExpr represents NOT or arithmetic negation.
type UnaryExpr struct {
	Op   token.TokenType // NOT, MINUS
	Expr Expr
	Type *TypeMapping
}

func (*UnaryExpr) exprNode() {}

// FuncCall represents a scalar or aggregate function call.
type FuncCall struct {
	Schema   string // optional schema qualifier
	Name     string
	Instance Expr // optional receiver, rendered as instance.Name(...)
	Args     []Expr
	Niladic  bool // rendered without parentheses (e.g. CURRENT_TIMESTAMP)
	Type     *TypeMapping
}

func (*FuncCall) exprNode() {}

// CastExpr converts an expression to a store type.
type CastExpr struct {
	Expr Expr
	Type *TypeMapping
}

func (*CastExpr) exprNode() {}

// WhenClause is one WHEN ... THEN ... arm of a CASE expression.
type WhenClause struct {
	Condition Expr
	Result    Expr
}

// CaseExpr represents a simple (Operand set) or searched CASE expression.
type CaseExpr struct {
	Operand Expr
	Whens   []WhenClause
	Else    Expr
	Type    *TypeMapping
}

func (*CaseExpr) exprNode() {}

// InExpr represents expr [NOT] IN (values...) or expr [NOT] IN (subquery).
type InExpr struct {
	Expr   Expr
	Not    bool
	Values []Expr
	Query  *SelectExpr
}

func (*InExpr) exprNode() {}

// IsNullExpr represents expr IS [NOT] NULL.
type IsNullExpr struct {
	Expr Expr
	Not  bool
}

func (*IsNullExpr) exprNode() {}

// LikeExpr represents expr [NOT] LIKE pattern [ESCAPE escape].
type LikeExpr struct {
	Expr    Expr
	Not     bool
	Pattern Expr
	Escape  Expr
}

func (*LikeExpr) exprNode() {}

// ExistsExpr represents [NOT] EXISTS (subquery).
type ExistsExpr struct {
	Not   bool
	Query *SelectExpr
}

func (*ExistsExpr) exprNode() {}

// SubqueryExpr is a scalar subquery used as an expression.
type SubqueryExpr struct {
	Query *SelectExpr
	Type  *TypeMapping
}

func (*SubqueryExpr) exprNode() {}

// Fragment is a verbatim SQL token (e.g. a store type name used as a function argument).
type Fragment struct {
	SQL string
}

func (*Fragment) exprNode() {}

// StarExpr represents * or alias.*.
type StarExpr struct {
	Table string
}

func (*StarExpr) exprNode() {}
