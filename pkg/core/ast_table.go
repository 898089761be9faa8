package core

// ---------- Table Sources ----------

// TableExpr is a physical table reference.
type TableExpr struct {
	Schema string
	Name   string
	Alias  string
}

func (*TableExpr) tableSource() {}

// SourceAlias implements TableSource.
func (t *TableExpr) SourceAlias() string { return t.Alias }

// FromSQLExpr is a caller-supplied raw SQL query used as a derived table.
// Placeholders {0}, {1}, ... in SQL are replaced with the rendered Args.
type FromSQLExpr struct {
	SQL   string
	Args  []Expr
	Alias string
}

func (*FromSQLExpr) tableSource() {}

// SourceAlias implements TableSource.
func (f *FromSQLExpr) SourceAlias() string { return f.Alias }
