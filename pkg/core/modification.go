package core

// EntityState is the kind of write a modification command performs.
type EntityState int

// EntityState values.
const (
	StateAdded EntityState = iota
	StateModified
	StateDeleted
)

// String returns the lowercase state name.
func (s EntityState) String() string {
	switch s {
	case StateAdded:
		return "added"
	case StateModified:
		return "modified"
	case StateDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// ParseEntityState returns the state for a name produced by EntityState.String.
func ParseEntityState(s string) (EntityState, bool) {
	switch s {
	case "added", "insert":
		return StateAdded, true
	case "modified", "update":
		return StateModified, true
	case "deleted", "delete":
		return StateDeleted, true
	}
	return StateAdded, false
}

// ColumnModification describes how one column takes part in a write.
type ColumnModification struct {
	ColumnName string
	Type       *TypeMapping

	// Value is bound for write columns; OriginalValue for condition columns.
	Value         any
	OriginalValue any

	// ParameterName overrides the generated parameter name when set.
	ParameterName string

	IsWrite            bool // present in INSERT column list / UPDATE SET
	IsCondition        bool // present in WHERE (key lookup, optimistic concurrency)
	IsRead             bool // value is generated by the server and read back
	IsKey              bool
	IsConcurrencyToken bool
}

// ConditionValue returns the value compared in a WHERE clause. It is always
// the original value, even when the column is also written; nil renders IS NULL.
func (c *ColumnModification) ConditionValue() any {
	return c.OriginalValue
}

// ModificationCommand is one row-level write against a table.
// It is created per affected row by the caller and consumed once by a batch renderer.
type ModificationCommand struct {
	Table   string
	Schema  string
	State   EntityState
	Columns []ColumnModification
}

// WriteColumns returns the columns flagged IsWrite, in declaration order.
func (c *ModificationCommand) WriteColumns() []ColumnModification {
	return c.filter(func(m *ColumnModification) bool { return m.IsWrite })
}

// ReadColumns returns the columns flagged IsRead, in declaration order.
func (c *ModificationCommand) ReadColumns() []ColumnModification {
	return c.filter(func(m *ColumnModification) bool { return m.IsRead })
}

// ConditionColumns returns the columns flagged IsCondition, in declaration order.
func (c *ModificationCommand) ConditionColumns() []ColumnModification {
	return c.filter(func(m *ColumnModification) bool { return m.IsCondition })
}

// KeyColumns returns the columns flagged IsKey, in declaration order.
func (c *ModificationCommand) KeyColumns() []ColumnModification {
	return c.filter(func(m *ColumnModification) bool { return m.IsKey })
}

// HasWrites reports whether any column is written.
func (c *ModificationCommand) HasWrites() bool {
	for i := range c.Columns {
		if c.Columns[i].IsWrite {
			return true
		}
	}
	return false
}

// RequiresResultSet reports whether the write reads values back.
func (c *ModificationCommand) RequiresResultSet() bool {
	for i := range c.Columns {
		if c.Columns[i].IsRead {
			return true
		}
	}
	return false
}

func (c *ModificationCommand) filter(keep func(*ColumnModification) bool) []ColumnModification {
	var out []ColumnModification
	for i := range c.Columns {
		if keep(&c.Columns[i]) {
			out = append(out, c.Columns[i])
		}
	}
	return out
}
