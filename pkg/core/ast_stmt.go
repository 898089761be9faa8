package core

// ---------- Select ----------

// ProjectionItem is one projected expression with an optional alias.
type ProjectionItem struct {
	Expr  Expr
	Alias string
}

// Ordering is one ORDER BY item.
type Ordering struct {
	Expr       Expr
	Descending bool
}

// SetOpKind identifies a set operation between two selects.
type SetOpKind int

// SetOpKind values.
const (
	SetOpUnion SetOpKind = iota
	SetOpUnionAll
	SetOpIntersect
	SetOpExcept
)

// String returns the SQL keywords for the set operation.
func (k SetOpKind) String() string {
	switch k {
	case SetOpUnionAll:
		return "UNION ALL"
	case SetOpIntersect:
		return "INTERSECT"
	case SetOpExcept:
		return "EXCEPT"
	default:
		return "UNION"
	}
}

// SetOperation links a select to its set-operation peer.
type SetOperation struct {
	Kind  SetOpKind
	Right *SelectExpr
}

// SelectExpr represents one SELECT.
//
// When used as a table source or nested in a set operation the Alias names the
// derived table. Limit and Offset are only deterministic together with OrderBy.
type SelectExpr struct {
	Alias      string
	Distinct   bool
	Projection []ProjectionItem
	Tables     []TableSource
	Joins      []*Join
	Predicate  Expr
	GroupBy    []Expr
	Having     Expr
	OrderBy    []Ordering
	Limit      Expr
	Offset     Expr
	SetOp      *SetOperation
}

func (*SelectExpr) tableSource() {}

// SourceAlias implements TableSource.
func (s *SelectExpr) SourceAlias() string { return s.Alias }

// HasFrom reports whether the select has any real table source.
func (s *SelectExpr) HasFrom() bool { return len(s.Tables) > 0 }

// IsPaged reports whether a limit or offset is set.
func (s *SelectExpr) IsPaged() bool { return s.Limit != nil || s.Offset != nil }
