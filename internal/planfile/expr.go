package planfile

import (
	"fmt"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/token"
)

func optionalExpr(path string, v any) (core.Expr, error) {
	if v == nil {
		return nil, nil
	}
	return decodeExpr(path, v)
}

func exprList(path string, v any) ([]core.Expr, error) {
	items, err := listField(path, v)
	if err != nil {
		return nil, err
	}
	out := make([]core.Expr, 0, len(items))
	for i, item := range items {
		e, err := decodeExpr(fmt.Sprintf("%s[%d]", path, i), item)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeExpr(path string, v any) (core.Expr, error) {
	m, err := mapField(path, v)
	if err != nil {
		return nil, err
	}
	typ, err := decodeType(path+".type", m["type"])
	if err != nil {
		return nil, err
	}

	switch {
	case has(m, "col"):
		return &core.ColumnRef{Table: stringField(m, "table"), Column: stringField(m, "col"), Type: typ}, nil

	case has(m, "lit"):
		val, err := convertValue(path+".lit", m["lit"], typ)
		if err != nil {
			return nil, err
		}
		return &core.Literal{Value: val, Type: typ}, nil

	case has(m, "param"):
		val, err := convertValue(path+".value", m["value"], typ)
		if err != nil {
			return nil, err
		}
		return &core.Parameter{Name: stringField(m, "param"), Value: val, Type: typ}, nil

	case has(m, "op"):
		op, ok := token.LookupOperator(stringField(m, "op"))
		if !ok {
			return nil, invalid(path+".op", "unknown operator %q", m["op"])
		}
		left, err := decodeExpr(path+".left", m["left"])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(path+".right", m["right"])
		if err != nil {
			return nil, err
		}
		return &core.BinaryExpr{Left: left, Op: op, Right: right, Type: typ}, nil

	case has(m, "not"):
		operand, err := decodeExpr(path+".not", m["not"])
		if err != nil {
			return nil, err
		}
		return &core.UnaryExpr{Op: token.NOT, Expr: operand, Type: typ}, nil

	case has(m, "neg"):
		operand, err := decodeExpr(path+".neg", m["neg"])
		if err != nil {
			return nil, err
		}
		return &core.UnaryExpr{Op: token.MINUS, Expr: operand, Type: typ}, nil

	case has(m, "func"):
		return decodeFunc(path, m, typ)

	case has(m, "cast"):
		operand, err := decodeExpr(path+".cast", m["cast"])
		if err != nil {
			return nil, err
		}
		return &core.CastExpr{Expr: operand, Type: typ}, nil

	case has(m, "case"):
		return decodeCase(path+".case", m["case"], typ)

	case has(m, "in"):
		operand, err := decodeExpr(path+".in", m["in"])
		if err != nil {
			return nil, err
		}
		in := &core.InExpr{Expr: operand, Not: boolField(m, "negate")}
		if has(m, "query") {
			if in.Query, err = decodeSelect(path+".query", m["query"]); err != nil {
				return nil, err
			}
			return in, nil
		}
		if in.Values, err = exprList(path+".values", m["values"]); err != nil {
			return nil, err
		}
		return in, nil

	case has(m, "is_null"):
		operand, err := decodeExpr(path+".is_null", m["is_null"])
		if err != nil {
			return nil, err
		}
		return &core.IsNullExpr{Expr: operand, Not: boolField(m, "negate")}, nil

	case has(m, "like"):
		operand, err := decodeExpr(path+".like", m["like"])
		if err != nil {
			return nil, err
		}
		pattern, err := decodeExpr(path+".pattern", m["pattern"])
		if err != nil {
			return nil, err
		}
		escape, err := optionalExpr(path+".escape", m["escape"])
		if err != nil {
			return nil, err
		}
		return &core.LikeExpr{Expr: operand, Pattern: pattern, Escape: escape, Not: boolField(m, "negate")}, nil

	case has(m, "exists"):
		q, err := decodeSelect(path+".exists", m["exists"])
		if err != nil {
			return nil, err
		}
		return &core.ExistsExpr{Query: q, Not: boolField(m, "negate")}, nil

	case has(m, "subquery"):
		q, err := decodeSelect(path+".subquery", m["subquery"])
		if err != nil {
			return nil, err
		}
		return &core.SubqueryExpr{Query: q, Type: typ}, nil

	case has(m, "raw"):
		return &core.Fragment{SQL: stringField(m, "raw")}, nil

	case has(m, "star"):
		table, _ := m["star"].(string)
		return &core.StarExpr{Table: table}, nil
	}
	return nil, invalid(path, "unknown expression node")
}

func decodeFunc(path string, m map[string]any, typ *core.TypeMapping) (core.Expr, error) {
	args, err := exprList(path+".args", m["args"])
	if err != nil {
		return nil, err
	}
	instance, err := optionalExpr(path+".instance", m["instance"])
	if err != nil {
		return nil, err
	}
	return &core.FuncCall{
		Schema:   stringField(m, "schema"),
		Name:     stringField(m, "func"),
		Instance: instance,
		Args:     args,
		Niladic:  boolField(m, "niladic"),
		Type:     typ,
	}, nil
}

func decodeCase(path string, v any, typ *core.TypeMapping) (core.Expr, error) {
	m, err := mapField(path, v)
	if err != nil {
		return nil, err
	}
	c := &core.CaseExpr{Type: typ}
	if c.Operand, err = optionalExpr(path+".operand", m["operand"]); err != nil {
		return nil, err
	}
	whens, err := listField(path+".when", m["when"])
	if err != nil {
		return nil, err
	}
	if len(whens) == 0 {
		return nil, invalid(path+".when", "CASE needs at least one WHEN")
	}
	for i, item := range whens {
		p := fmt.Sprintf("%s.when[%d]", path, i)
		wm, err := mapField(p, item)
		if err != nil {
			return nil, err
		}
		cond, err := decodeExpr(p+".if", wm["if"])
		if err != nil {
			return nil, err
		}
		result, err := decodeExpr(p+".then", wm["then"])
		if err != nil {
			return nil, err
		}
		c.Whens = append(c.Whens, core.WhenClause{Condition: cond, Result: result})
	}
	if c.Else, err = optionalExpr(path+".else", m["else"]); err != nil {
		return nil, err
	}
	return c, nil
}

func has(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}
