// Package sqlite provides the SQLite dialect definition.
// This package is pure Go with no database driver dependencies.
package sqlite

import (
	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
)

func init() {
	dialect.Register(SQLite)
}

var sqliteFunctions = []string{
	"CHANGES", "CHAR", "GLOB", "HEX", "IFNULL", "IIF", "INSTR", "LENGTH",
	"LIKELIHOOD", "PRINTF", "QUOTE", "RANDOM", "RANDOMBLOB", "SUBSTR",
	"TOTAL", "GROUP_CONCAT", "TYPEOF", "UNICODE", "ZEROBLOB",
	"DATE", "TIME", "DATETIME", "JULIANDAY", "STRFTIME", "UNIXEPOCH",
}

// SQLite is the SQLite dialect: 1/0 booleans, || concatenation and LIMIT/OFFSET
// paging with LIMIT -1 for offset-only queries. Batched writes use RETURNING.
var SQLite = dialect.NewDialect("sqlite").
	PlaceholderStyle(core.PlaceholderAt).
	Booleans("1", "0").
	DateTimeLiterals("2006-01-02 15:04:05.000", "'%s'").
	ConcatOperator("||").
	BoolStoreType("INTEGER").
	BuiltinFunctions(sqliteFunctions...).
	LimitOffset(dialect.LimitOffsetPaging("-1")).
	Batch(dialect.BatchConfig{
		Capture:             dialect.CaptureReturning,
		StatementTerminator: ";",
		RowCountSQL:         "SELECT changes()",
	}).
	Build()
