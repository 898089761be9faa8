package dialect

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/spi"
)

// ---------- Function shapes ----------
// Name-specific handlers registered with Builder.Function.

// ExtractShape renders NAME(arg0 FROM arg1), e.g. EXTRACT(YEAR FROM d).
func ExtractShape(g spi.GeneratorOps, f *core.FuncCall) bool {
	return infixShape(g, f, " FROM ")
}

// CastShape renders NAME(arg0 AS arg1), e.g. CAST(x AS VARCHAR2(100)).
func CastShape(g spi.GeneratorOps, f *core.FuncCall) bool {
	return infixShape(g, f, " AS ")
}

func infixShape(g spi.GeneratorOps, f *core.FuncCall, sep string) bool {
	if len(f.Args) != 2 || f.Instance != nil {
		return false
	}
	g.Write(f.Name + "(")
	g.Visit(f.Args[0])
	g.Write(sep)
	g.Visit(f.Args[1])
	g.Write(")")
	return true
}

// EmptySearchFold collapses a positional-search call to the literal 1 when the
// search argument at index searchArg is a constant empty string. The result
// assumes 1-based positions, so it only suits dialects whose search function
// reports the first position as 1.
func EmptySearchFold(searchArg int) spi.FunctionHandler {
	return func(g spi.GeneratorOps, f *core.FuncCall) bool {
		if searchArg >= len(f.Args) {
			return false
		}
		lit, ok := f.Args[searchArg].(*core.Literal)
		if !ok {
			return false
		}
		if s, ok := lit.Value.(string); ok && s == "" {
			g.Write("1")
			return true
		}
		return false
	}
}

// TimestampCast wraps the default rendering in CAST(... AS storeType).
func TimestampCast(storeType string) spi.FunctionHandler {
	return func(g spi.GeneratorOps, f *core.FuncCall) bool {
		g.Write("CAST(")
		g.DefaultFunction(f)
		g.Write(" AS " + storeType + ")")
		return true
	}
}

// DecimalResultCast wraps any function whose declared type is a fixed-precision
// decimal in an outer CAST, normalizing precision and scale. The store type of
// the declared type is used, or fallbackFormat (e.g. "NUMBER(%d,%d)") applied
// to its precision and scale.
func DecimalResultCast(fallbackFormat string, defaultPrecision, defaultScale int) spi.FunctionHandler {
	return func(g spi.GeneratorOps, f *core.FuncCall) bool {
		if !f.Type.IsDecimal() || strings.EqualFold(f.Name, "CAST") {
			return false
		}
		storeType := f.Type.StoreType
		if storeType == "" {
			p, s := f.Type.Precision, f.Type.Scale
			if p == 0 {
				p, s = defaultPrecision, defaultScale
			}
			storeType = fmt.Sprintf(fallbackFormat, p, s)
		}
		g.Write("CAST(")
		g.DefaultFunction(f)
		g.Write(" AS " + storeType + ")")
		return true
	}
}

// ---------- Pseudo-from and joins ----------

// DualPseudoFrom renders FROM DUAL for selects without a table source.
func DualPseudoFrom(g spi.GeneratorOps) {
	g.Newline()
	g.Write("FROM DUAL")
}

// LateralJoins renders apply joins as CROSS JOIN LATERAL / LEFT JOIN LATERAL ... ON TRUE.
func LateralJoins(g spi.GeneratorOps, j *core.Join) bool {
	switch j.Kind {
	case core.JoinCrossApply:
		g.Write("CROSS JOIN LATERAL ")
		g.VisitSource(j.Table)
	case core.JoinOuterApply:
		g.Write("LEFT JOIN LATERAL ")
		g.VisitSource(j.Table)
		g.Write(" ON TRUE")
	default:
		return false
	}
	return true
}
