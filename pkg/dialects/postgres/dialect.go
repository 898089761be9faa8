// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package postgres

import (
	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// postgresFunctions are rendered without delimiting in addition to the ANSI set.
var postgresFunctions = []string{
	"NOW", "LOCALTIME", "LOCALTIMESTAMP", "CLOCK_TIMESTAMP",
	"DATE_TRUNC", "DATE_PART", "EXTRACT", "AGE", "TO_CHAR", "TO_DATE", "TO_TIMESTAMP",
	"LENGTH", "CHAR_LENGTH", "STRPOS", "POSITION", "LEFT", "RIGHT", "CONCAT", "CONCAT_WS",
	"SPLIT_PART", "INITCAP", "LPAD", "RPAD", "REGEXP_REPLACE", "MD5",
	"GREATEST", "LEAST", "MOD", "TRUNC", "RANDOM", "GEN_RANDOM_UUID",
	"ARRAY_AGG", "STRING_AGG", "JSONB_AGG", "JSON_AGG", "BOOL_AND", "BOOL_OR",
}

// Postgres is the PostgreSQL dialect: numbered placeholders, LIMIT/OFFSET
// paging, lateral joins for apply and RETURNING for batch capture.
var Postgres = dialect.NewDialect("postgres").
	PlaceholderStyle(core.PlaceholderDollar).
	DefaultSchema("public").
	BinaryLiterals(dialect.BinaryBytea).
	ConcatOperator("||").
	BuiltinFunctions(postgresFunctions...).
	Function("EXTRACT", dialect.ExtractShape).
	LimitOffset(dialect.LimitOffsetPaging("")).
	Join(dialect.LateralJoins).
	Batch(dialect.BatchConfig{
		Capture:             dialect.CaptureReturning,
		StatementTerminator: ";",
	}).
	Build()
