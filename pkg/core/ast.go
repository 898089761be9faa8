package core

// Expr is a marker interface for scalar expression nodes.
// The set of implementations is closed; renderers switch on the concrete type.
type Expr interface {
	exprNode() // Marker method to distinguish expressions
}

// TableSource is a marker interface for items that may appear in a FROM clause.
type TableSource interface {
	tableSource() // Marker method to distinguish table sources
	// SourceAlias returns the alias the source is visible under.
	SourceAlias() string
}

// IsConstant reports whether an expression is a literal or a bound parameter.
// Orderings over such expressions have no observable effect.
func IsConstant(e Expr) bool {
	switch e.(type) {
	case *Literal, *Parameter:
		return true
	}
	return false
}
