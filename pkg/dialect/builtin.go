package dialect

// ANSIBuiltinFunctions are function names every dialect renders undelimited.
// Dialects add their own via Builder.BuiltinFunctions.
var ANSIBuiltinFunctions = []string{
	// Aggregates
	"AVG", "COUNT", "MAX", "MIN", "SUM",
	// Null handling and conditionals
	"COALESCE", "NULLIF",
	// Numeric
	"ABS", "CEILING", "FLOOR", "POWER", "ROUND", "SQRT", "EXP", "LOG",
	// String
	"LOWER", "UPPER", "LTRIM", "RTRIM", "TRIM", "REPLACE", "SUBSTRING",
	// Conversion
	"CAST",
	// Date/time generators
	"CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP",
}
