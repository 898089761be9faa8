package core

// ParameterValue is one bound parameter in the order the provider must bind it.
type ParameterValue struct {
	Name  string
	Value any
	Type  *TypeMapping
}

// Command is rendered SQL text plus its ordered parameters.
type Command struct {
	SQL        string
	Parameters []ParameterValue
}

// Args returns the parameter values in binding order, for database/sql.
func (c *Command) Args() []any {
	args := make([]any, len(c.Parameters))
	for i, p := range c.Parameters {
		args[i] = p.Value
	}
	return args
}

// ResultGrouping tells the caller how result sets of a batch map back to its rows.
type ResultGrouping int

const (
	// GroupingSingleResultSet means the whole batch produces one result set,
	// one row per input command, in input order.
	GroupingSingleResultSet ResultGrouping = iota
	// GroupingPerCommand means each input command produces its own result set.
	GroupingPerCommand
)

// String returns a short description of the grouping.
func (g ResultGrouping) String() string {
	if g == GroupingPerCommand {
		return "per-command"
	}
	return "single"
}
