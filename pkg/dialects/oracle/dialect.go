// Package oracle provides the Oracle dialect definition.
//
// Oracle lacks several constructs the shared renderer assumes: bitwise
// operators, the % operator, FROM-less selects and a boolean type. The hooks
// below lower those constructs to portable equivalents.
package oracle

import (
	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
)

func init() {
	dialect.Register(Oracle)
}

var oracleFunctions = []string{
	"ADD_MONTHS", "BITAND", "CHR", "DECODE", "EXTRACT", "GREATEST", "INITCAP",
	"INSTR", "LAST_DAY", "LEAST", "LENGTH", "LPAD", "RPAD", "MOD", "MONTHS_BETWEEN",
	"NVL", "NVL2", "SUBSTR", "SYSDATE", "SYSTIMESTAMP", "TO_CHAR", "TO_DATE",
	"TO_NUMBER", "TO_TIMESTAMP", "TRUNC", "SIGN", "LISTAGG", "SYS_GUID",
}

// Oracle is the Oracle dialect.
var Oracle = dialect.NewDialect("oracle").
	PlaceholderStyle(core.PlaceholderColon).
	Booleans("1", "0").
	BinaryLiterals(dialect.BinaryHextoraw).
	DateTimeLiterals("2006-01-02 15:04:05.999999", "TIMESTAMP '%s'").
	AliasSeparator(" ").
	ConcatOperator("||").
	BoolStoreType("NUMBER(1)").
	BuiltinFunctions(oracleFunctions...).
	Function("EXTRACT", dialect.ExtractShape).
	Function("CAST", dialect.CastShape).
	// INSTR positions are 1-based, so an empty search string matches at 1.
	Function("INSTR", dialect.EmptySearchFold(1)).
	Function("ADD_MONTHS", dialect.TimestampCast("TIMESTAMP")).
	Functions(dialect.DecimalResultCast("NUMBER(%d,%d)", 29, 4)).
	LimitOffset(dialect.FetchFirstPaging).
	Ordering(dialect.NullsFirstOnAscending).
	Binary(dialect.LowerBitwise).
	PseudoFrom(dialect.DualPseudoFrom).
	Batch(dialect.BatchConfig{
		Capture:             dialect.CaptureUnsupported,
		StatementTerminator: ";",
	}).
	Build()
