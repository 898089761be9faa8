// Package dialect provides SQL dialect configuration and render hooks.
//
// This file contains paging hooks that form the "toolbox" of reusable
// render logic. These can be composed into any dialect.
package dialect

import (
	"log/slog"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/spi"
)

// TopPaging renders TOP(n) when only a limit is present.
func TopPaging(g spi.GeneratorOps, s *core.SelectExpr) {
	if s.Limit != nil && s.Offset == nil {
		g.Write("TOP(")
		g.Visit(s.Limit)
		g.Write(") ")
	}
}

// OffsetFetchPaging renders OFFSET n ROWS [FETCH NEXT m ROWS ONLY] when an offset is present.
// OFFSET requires an ORDER BY, so ORDER BY (SELECT 1) is written when none was rendered.
func OffsetFetchPaging(g spi.GeneratorOps, s *core.SelectExpr) {
	if s.Offset == nil {
		return
	}
	if len(core.NonConstantOrderings(s.OrderBy)) == 0 {
		g.Newline()
		g.Write("ORDER BY (SELECT 1)")
	}
	g.Newline()
	g.Write("OFFSET ")
	g.Visit(s.Offset)
	g.Write(" ROWS")
	if s.Limit != nil {
		g.Write(" FETCH NEXT ")
		g.Visit(s.Limit)
		g.Write(" ROWS ONLY")
	}
}

// LimitOffsetPaging renders LIMIT/OFFSET. When only an offset is present and
// unboundedLimit is set (e.g. "-1"), LIMIT unboundedLimit is written first.
func LimitOffsetPaging(unboundedLimit string) spi.LimitOffsetHandler {
	return func(g spi.GeneratorOps, s *core.SelectExpr) {
		if s.Limit == nil && s.Offset == nil {
			return
		}
		g.Newline()
		wrote := false
		switch {
		case s.Limit != nil:
			g.Write("LIMIT ")
			g.Visit(s.Limit)
			wrote = true
		case unboundedLimit != "":
			g.Write("LIMIT " + unboundedLimit)
			wrote = true
		}
		if s.Offset != nil {
			if wrote {
				g.Write(" ")
			}
			g.Write("OFFSET ")
			g.Visit(s.Offset)
		}
	}
}

// FetchFirstPaging renders FETCH FIRST n ROWS ONLY for limit-only selects.
// Any combination with an offset is not rendered; callers needing both must
// validate beforehand.
func FetchFirstPaging(g spi.GeneratorOps, s *core.SelectExpr) {
	switch {
	case s.Limit != nil && s.Offset == nil:
		g.Newline()
		g.Write("FETCH FIRST ")
		g.Visit(s.Limit)
		g.Write(" ROWS ONLY")
	case s.Offset != nil:
		g.Logger().Debug("paging combination not supported, offset dropped",
			slog.Bool("has_limit", s.Limit != nil))
	}
}
