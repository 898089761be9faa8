package planfile

import (
	"fmt"

	"github.com/leapstack-labs/relsql/pkg/core"
)

var setOpKinds = map[string]core.SetOpKind{
	"union":     core.SetOpUnion,
	"union all": core.SetOpUnionAll,
	"intersect": core.SetOpIntersect,
	"except":    core.SetOpExcept,
}

func decodeSelect(path string, v any) (*core.SelectExpr, error) {
	m, err := mapField(path, v)
	if err != nil {
		return nil, err
	}
	s := &core.SelectExpr{
		Alias:    stringField(m, "alias"),
		Distinct: boolField(m, "distinct"),
	}

	project, err := listField(path+".project", m["project"])
	if err != nil {
		return nil, err
	}
	for i, item := range project {
		p := fmt.Sprintf("%s.project[%d]", path, i)
		im, err := mapField(p, item)
		if err != nil {
			return nil, err
		}
		e, err := decodeExpr(p+".expr", im["expr"])
		if err != nil {
			return nil, err
		}
		s.Projection = append(s.Projection, core.ProjectionItem{Expr: e, Alias: stringField(im, "alias")})
	}

	from, err := listField(path+".from", m["from"])
	if err != nil {
		return nil, err
	}
	for i, item := range from {
		src, err := decodeSource(fmt.Sprintf("%s.from[%d]", path, i), item)
		if err != nil {
			return nil, err
		}
		s.Tables = append(s.Tables, src)
	}

	joins, err := listField(path+".joins", m["joins"])
	if err != nil {
		return nil, err
	}
	for i, item := range joins {
		j, err := decodeJoin(fmt.Sprintf("%s.joins[%d]", path, i), item)
		if err != nil {
			return nil, err
		}
		s.Joins = append(s.Joins, j)
	}

	if s.Predicate, err = optionalExpr(path+".where", m["where"]); err != nil {
		return nil, err
	}
	if s.GroupBy, err = exprList(path+".group_by", m["group_by"]); err != nil {
		return nil, err
	}
	if s.Having, err = optionalExpr(path+".having", m["having"]); err != nil {
		return nil, err
	}

	orderBy, err := listField(path+".order_by", m["order_by"])
	if err != nil {
		return nil, err
	}
	for i, item := range orderBy {
		p := fmt.Sprintf("%s.order_by[%d]", path, i)
		om, err := mapField(p, item)
		if err != nil {
			return nil, err
		}
		e, err := decodeExpr(p+".expr", om["expr"])
		if err != nil {
			return nil, err
		}
		s.OrderBy = append(s.OrderBy, core.Ordering{Expr: e, Descending: boolField(om, "desc")})
	}

	if s.Limit, err = optionalExpr(path+".limit", m["limit"]); err != nil {
		return nil, err
	}
	if s.Offset, err = optionalExpr(path+".offset", m["offset"]); err != nil {
		return nil, err
	}

	if set, ok := m["set"]; ok {
		if s.SetOp, err = decodeSetOp(path+".set", set); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func decodeSetOp(path string, v any) (*core.SetOperation, error) {
	m, err := mapField(path, v)
	if err != nil {
		return nil, err
	}
	kindName := stringField(m, "kind")
	if kindName == "" {
		kindName = "union"
	}
	kind, ok := setOpKinds[kindName]
	if !ok {
		return nil, invalid(path+".kind", "unknown set operation %q", kindName)
	}
	right, err := decodeSelect(path+".select", m["select"])
	if err != nil {
		return nil, err
	}
	return &core.SetOperation{Kind: kind, Right: right}, nil
}

func decodeSource(path string, v any) (core.TableSource, error) {
	m, err := mapField(path, v)
	if err != nil {
		return nil, err
	}
	alias := stringField(m, "alias")
	switch {
	case m["table"] != nil:
		return &core.TableExpr{Schema: stringField(m, "schema"), Name: stringField(m, "table"), Alias: alias}, nil
	case m["sql"] != nil:
		args, err := exprList(path+".args", m["args"])
		if err != nil {
			return nil, err
		}
		return &core.FromSQLExpr{SQL: stringField(m, "sql"), Args: args, Alias: alias}, nil
	case m["select"] != nil:
		s, err := decodeSelect(path+".select", m["select"])
		if err != nil {
			return nil, err
		}
		s.Alias = alias
		return s, nil
	}
	return nil, invalid(path, "table source needs one of table, sql or select")
}

func decodeJoin(path string, v any) (*core.Join, error) {
	m, err := mapField(path, v)
	if err != nil {
		return nil, err
	}
	kindName := stringField(m, "kind")
	if kindName == "" {
		kindName = "inner"
	}
	kind, ok := core.ParseJoinKind(kindName)
	if !ok {
		return nil, invalid(path+".kind", "unknown join kind %q", kindName)
	}
	src, err := decodeSource(path+".source", m["source"])
	if err != nil {
		return nil, err
	}
	on, err := optionalExpr(path+".on", m["on"])
	if err != nil {
		return nil, err
	}
	return &core.Join{Kind: kind, Table: src, On: on}, nil
}
