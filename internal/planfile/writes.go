package planfile

import (
	"fmt"

	"github.com/leapstack-labs/relsql/pkg/core"
)

func decodeCommand(path string, v any) (*core.ModificationCommand, error) {
	m, err := mapField(path, v)
	if err != nil {
		return nil, err
	}
	table := stringField(m, "table")
	if table == "" {
		return nil, invalid(path+".table", "table is required")
	}
	stateName := stringField(m, "state")
	state, ok := core.ParseEntityState(stateName)
	if !ok {
		return nil, invalid(path+".state", "unknown state %q", stateName)
	}
	cmd := &core.ModificationCommand{Table: table, Schema: stringField(m, "schema"), State: state}

	cols, err := listField(path+".columns", m["columns"])
	if err != nil {
		return nil, err
	}
	for i, item := range cols {
		col, err := decodeColumn(fmt.Sprintf("%s.columns[%d]", path, i), item)
		if err != nil {
			return nil, err
		}
		cmd.Columns = append(cmd.Columns, col)
	}
	return cmd, nil
}

func decodeColumn(path string, v any) (core.ColumnModification, error) {
	m, err := mapField(path, v)
	if err != nil {
		return core.ColumnModification{}, err
	}
	typ, err := decodeType(path+".type", m["type"])
	if err != nil {
		return core.ColumnModification{}, err
	}
	value, err := convertValue(path+".value", m["value"], typ)
	if err != nil {
		return core.ColumnModification{}, err
	}
	original, err := convertValue(path+".original", m["original"], typ)
	if err != nil {
		return core.ColumnModification{}, err
	}
	col := core.ColumnModification{
		ColumnName:         stringField(m, "name"),
		Type:               typ,
		Value:              value,
		OriginalValue:      original,
		ParameterName:      stringField(m, "param"),
		IsWrite:            boolField(m, "write"),
		IsCondition:        boolField(m, "condition"),
		IsRead:             boolField(m, "read"),
		IsKey:              boolField(m, "key"),
		IsConcurrencyToken: boolField(m, "concurrency"),
	}
	if col.ColumnName == "" {
		return core.ColumnModification{}, invalid(path+".name", "column name is required")
	}
	return col, nil
}
