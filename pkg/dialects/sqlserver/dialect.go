// Package sqlserver provides the SQL Server dialect definition.
// This package is pure Go with no database driver dependencies.
package sqlserver

import (
	"strings"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
)

func init() {
	dialect.Register(SQLServer)
}

var sqlServerFunctions = []string{
	"CHARINDEX", "DATALENGTH", "DATEADD", "DATEDIFF", "DATEPART", "DATENAME",
	"DAY", "MONTH", "YEAR", "EOMONTH", "GETDATE", "GETUTCDATE", "SYSDATETIME",
	"SYSDATETIMEOFFSET", "SYSUTCDATETIME", "ISNULL", "LEN", "NEWID",
	"NEWSEQUENTIALID", "CONVERT", "TRY_CAST", "TRY_CONVERT", "IIF", "CHOOSE",
	"LEFT", "RIGHT", "REPLICATE", "REVERSE", "STUFF", "SPACE", "CONCAT",
	"STRING_AGG", "COUNT_BIG", "SQUARE", "SIGN", "STDEV", "STDEVP", "VAR", "VARP",
}

// SQLServer is the SQL Server dialect: bracket quoting, @name parameters,
// TOP(n) for limit-only paging and OFFSET/FETCH otherwise. Batched writes
// capture generated values through a table variable.
var SQLServer = dialect.NewDialect("sqlserver").
	Identifiers("[", "]", "]]").
	PlaceholderStyle(core.PlaceholderAt).
	DefaultSchema("dbo").
	Booleans("CAST(1 AS bit)", "CAST(0 AS bit)").
	StringPrefix("N").
	BinaryLiterals(dialect.BinaryHex).
	DateTimeLiterals("2006-01-02T15:04:05.0000000", "'%s'").
	BoolStoreType("bit").
	BuiltinFunctions(sqlServerFunctions...).
	Top(dialect.TopPaging).
	LimitOffset(dialect.OffsetFetchPaging).
	Batch(dialect.BatchConfig{
		Capture:             dialect.CaptureTableVariable,
		StatementTerminator: ";",
		RowCountSQL:         "SELECT @@ROWCOUNT",
		MultipleResultSets:  true,
		CaptureType:         captureType,
	}).
	Build()

// captureType normalizes server-computed types so OUTPUT ... INTO matches the
// table variable exactly. rowversion cannot be declared in a table variable.
func captureType(t *core.TypeMapping) string {
	if t == nil {
		return ""
	}
	if t.Kind == core.KindRowVersion || strings.EqualFold(t.StoreType, "rowversion") ||
		strings.EqualFold(t.StoreType, "timestamp") {
		if t.Nullable {
			return "varbinary(8)"
		}
		return "binary(8)"
	}
	return t.StoreType
}
