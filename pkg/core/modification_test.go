package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func peopleInsert() *ModificationCommand {
	return &ModificationCommand{
		Table: "People",
		State: StateAdded,
		Columns: []ColumnModification{
			{ColumnName: "Id", IsRead: true, IsKey: true},
			{ColumnName: "Name", IsWrite: true, Value: "Ada"},
			{ColumnName: "Version", IsRead: true, IsConcurrencyToken: true},
		},
	}
}

func TestModificationCommand_ColumnViews(t *testing.T) {
	cmd := peopleInsert()

	names := func(cols []ColumnModification) []string {
		var out []string
		for _, c := range cols {
			out = append(out, c.ColumnName)
		}
		return out
	}

	assert.Equal(t, []string{"Name"}, names(cmd.WriteColumns()))
	assert.Equal(t, []string{"Id", "Version"}, names(cmd.ReadColumns()))
	assert.Equal(t, []string{"Id"}, names(cmd.KeyColumns()))
	assert.Empty(t, cmd.ConditionColumns())
	assert.True(t, cmd.HasWrites())
	assert.True(t, cmd.RequiresResultSet())
}

func TestModificationCommand_DefaultsOnly(t *testing.T) {
	cmd := &ModificationCommand{
		Table:   "People",
		Columns: []ColumnModification{{ColumnName: "Id", IsRead: true}},
	}
	assert.False(t, cmd.HasWrites())
	assert.True(t, cmd.RequiresResultSet())
}

func TestColumnModification_ConditionValue(t *testing.T) {
	tests := []struct {
		name string
		col  ColumnModification
		want any
	}{
		{"original value wins", ColumnModification{IsWrite: true, Value: 2, OriginalValue: 1}, 1},
		{"written token with null original", ColumnModification{IsWrite: true, IsCondition: true, Value: "v2"}, nil},
		{"condition only", ColumnModification{IsCondition: true, OriginalValue: 7}, 7},
		{"condition only nil", ColumnModification{IsCondition: true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.col.ConditionValue())
		})
	}
}

func TestIsConstant(t *testing.T) {
	assert.True(t, IsConstant(&Literal{Value: 1}))
	assert.True(t, IsConstant(&Parameter{Name: "p"}))
	assert.False(t, IsConstant(&ColumnRef{Column: "c"}))
	assert.False(t, IsConstant(nil))
}

func TestKindAndStateNames(t *testing.T) {
	for k := range kindNames {
		got, ok := ParseTypeKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	for k := range joinKindNames {
		got, ok := ParseJoinKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	s, ok := ParseEntityState("update")
	assert.True(t, ok)
	assert.Equal(t, StateModified, s)
	assert.Equal(t, "per-command", GroupingPerCommand.String())
	assert.Equal(t, "UNION ALL", SetOpUnionAll.String())
}
