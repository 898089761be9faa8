package update

import (
	"testing"

	"github.com/leapstack-labs/relsql/internal/testutil"
	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
	"github.com/leapstack-labs/relsql/pkg/dialects/oracle"
	"github.com/leapstack-labs/relsql/pkg/dialects/postgres"
	"github.com/leapstack-labs/relsql/pkg/dialects/sqlite"
	"github.com/leapstack-labs/relsql/pkg/dialects/sqlserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	nvarchar = &core.TypeMapping{Kind: core.KindString, StoreType: "nvarchar(max)"}
	intType  = &core.TypeMapping{Kind: core.KindInt, StoreType: "int"}
)

func personInsert(name string) *core.ModificationCommand {
	return &core.ModificationCommand{
		Table: "People",
		State: core.StateAdded,
		Columns: []core.ColumnModification{
			{ColumnName: "Name", Type: nvarchar, Value: name, IsWrite: true},
			{ColumnName: "Id", Type: intType, IsRead: true, IsKey: true},
		},
	}
}

func defaultsInsert() *core.ModificationCommand {
	return &core.ModificationCommand{
		Table: "People",
		State: core.StateAdded,
		Columns: []core.ColumnModification{
			{ColumnName: "Id", Type: intType, IsRead: true, IsKey: true},
		},
	}
}

func newGenerator(t *testing.T, d *dialect.Dialect) *Generator {
	t.Helper()
	return New(d, WithLogger(testutil.NewTestLogger(t)))
}

func TestRenderBulkInsert_SQLServerCapturesIntoTableVariable(t *testing.T) {
	g := newGenerator(t, sqlserver.SQLServer)

	cmd, grouping, err := g.RenderBulkInsert("People", "", []*core.ModificationCommand{personInsert("Alice"), personInsert("Bob")})

	require.NoError(t, err)
	assert.Equal(t, core.GroupingSingleResultSet, grouping)
	assert.Equal(t, `DECLARE @inserted0 TABLE ([Id] int, [_Position] int);
MERGE [People] USING (
VALUES (@p0, 0),
(@p1, 1)) AS i ([Name], _Position) ON 1=0
WHEN NOT MATCHED THEN
INSERT ([Name])
VALUES (i.[Name])
OUTPUT INSERTED.[Id], i._Position
INTO @inserted0;
SELECT [Id] FROM @inserted0 ORDER BY [_Position];`, cmd.SQL)
	require.Len(t, cmd.Parameters, 2)
	assert.Equal(t, "p0", cmd.Parameters[0].Name)
	assert.Equal(t, "Alice", cmd.Parameters[0].Value)
	assert.Equal(t, "Bob", cmd.Parameters[1].Value)
	assert.Same(t, nvarchar, cmd.Parameters[0].Type)
}

func TestRenderBulkInsert_SQLServerSingleRowUsesInsert(t *testing.T) {
	g := newGenerator(t, sqlserver.SQLServer)

	cmd, _, err := g.RenderBulkInsert("People", "", []*core.ModificationCommand{personInsert("Alice")})

	require.NoError(t, err)
	assert.Equal(t, `DECLARE @inserted0 TABLE ([Id] int);
INSERT INTO [People] ([Name])
OUTPUT INSERTED.[Id]
INTO @inserted0
VALUES (@p0);
SELECT [Id] FROM @inserted0;`, cmd.SQL)
}

func TestAppendBulkInsert_SQLServerCaptureIsOrderedByPosition(t *testing.T) {
	b, err := newGenerator(t, sqlserver.SQLServer).NewBatch()
	require.NoError(t, err)

	_, err = b.AppendBulkInsert("People", "dbo", []*core.ModificationCommand{
		personInsert("Alice"), personInsert("Bob"), personInsert("Carol"),
	})
	require.NoError(t, err)

	stmts := b.Statements()
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0].SQL, "MERGE [dbo].[People] USING (\nVALUES (@p0, 0),\n(@p1, 1),\n(@p2, 2))")
	assert.Contains(t, stmts[0].SQL, "OUTPUT INSERTED.[Id], i._Position\nINTO @inserted0;")
	assert.Equal(t, "SELECT [Id] FROM @inserted0 ORDER BY [_Position];", stmts[0].Trailing)
	assert.Equal(t, []int{0, 1, 2}, stmts[0].Commands)
	assert.Equal(t, []string{"Id"}, stmts[0].ReadColumns)
	assert.Equal(t, []any{"Alice", "Bob", "Carol"}, b.Command().Args())
}

func TestRenderBulkInsert_DefaultsOnlyRowsGetOwnStatements(t *testing.T) {
	g := newGenerator(t, sqlserver.SQLServer)

	cmd, grouping, err := g.RenderBulkInsert("People", "", []*core.ModificationCommand{defaultsInsert(), defaultsInsert()})

	require.NoError(t, err)
	assert.Equal(t, core.GroupingPerCommand, grouping)
	assert.Equal(t, `DECLARE @inserted0 TABLE ([Id] int);
INSERT INTO [People]
OUTPUT INSERTED.[Id]
INTO @inserted0
DEFAULT VALUES;
SELECT [Id] FROM @inserted0;
DECLARE @inserted1 TABLE ([Id] int);
INSERT INTO [People]
OUTPUT INSERTED.[Id]
INTO @inserted1
DEFAULT VALUES;
SELECT [Id] FROM @inserted1;`, cmd.SQL)
	assert.Empty(t, cmd.Parameters)
}

func TestAppendBulkInsert_MixedRowsAreSplit(t *testing.T) {
	b, err := newGenerator(t, sqlite.SQLite).NewBatch()
	require.NoError(t, err)

	grouping, err := b.AppendBulkInsert("People", "", []*core.ModificationCommand{
		personInsert("Alice"), defaultsInsert(), personInsert("Bob"),
	})

	require.NoError(t, err)
	assert.Equal(t, core.GroupingPerCommand, grouping)
	stmts := b.Statements()
	require.Len(t, stmts, 2)
	assert.Equal(t, []int{0, 2}, stmts[0].Commands)
	assert.Equal(t, []int{1}, stmts[1].Commands)
	assert.Contains(t, stmts[0].SQL, "VALUES (@p0),\n(@p1)")
	assert.Contains(t, stmts[1].SQL, "DEFAULT VALUES")
}

func TestRenderBulkInsert_Returning(t *testing.T) {
	g := newGenerator(t, sqlite.SQLite)

	cmd, grouping, err := g.RenderBulkInsert("People", "", []*core.ModificationCommand{personInsert("Alice"), personInsert("Bob")})

	require.NoError(t, err)
	assert.Equal(t, core.GroupingSingleResultSet, grouping)
	assert.Equal(t, "INSERT INTO \"People\" (\"Name\")\nVALUES (@p0),\n(@p1)\nRETURNING \"Id\";", cmd.SQL)
}

func TestAppendInsert_RowCountWhenNothingIsRead(t *testing.T) {
	b, err := newGenerator(t, sqlite.SQLite).NewBatch()
	require.NoError(t, err)

	require.NoError(t, b.AppendInsert(&core.ModificationCommand{
		Table:   "Tags",
		State:   core.StateAdded,
		Columns: []core.ColumnModification{{ColumnName: "Label", Value: "go", IsWrite: true}},
	}))

	assert.Equal(t, "INSERT INTO \"Tags\" (\"Label\")\nVALUES (@p0);\nSELECT changes();", b.Command().SQL)
	stmt := b.Statements()[0]
	assert.Equal(t, "INSERT INTO \"Tags\" (\"Label\")\nVALUES (@p0);", stmt.SQL)
	assert.Equal(t, "SELECT changes();", stmt.Trailing)
	assert.Equal(t, ResultRowCount, stmt.Result)
}

func TestAppendUpdate_SQLServerConcurrencyToken(t *testing.T) {
	b, err := newGenerator(t, sqlserver.SQLServer).NewBatch()
	require.NoError(t, err)

	err = b.AppendUpdate(&core.ModificationCommand{
		Table: "People",
		State: core.StateModified,
		Columns: []core.ColumnModification{
			{ColumnName: "Name", Type: nvarchar, Value: "Carol", IsWrite: true},
			{ColumnName: "Id", Type: intType, OriginalValue: 1, IsCondition: true, IsKey: true},
			{ColumnName: "Version", Type: &core.TypeMapping{Kind: core.KindRowVersion, StoreType: "rowversion"},
				OriginalValue: []byte{0, 0, 0, 1}, IsRead: true, IsCondition: true, IsConcurrencyToken: true},
		},
	})

	require.NoError(t, err)
	cmd := b.Command()
	assert.Equal(t, `DECLARE @inserted0 TABLE ([Version] binary(8));
UPDATE [People] SET [Name] = @p0
OUTPUT INSERTED.[Version]
INTO @inserted0
WHERE [Id] = @p1 AND [Version] = @p2;
SELECT [Version] FROM @inserted0;`, cmd.SQL)
	assert.Equal(t, []any{"Carol", 1, []byte{0, 0, 0, 1}}, cmd.Args())
}

func TestAppendUpdate_NullConditionAndNoWhere(t *testing.T) {
	b, err := newGenerator(t, postgres.Postgres).NewBatch()
	require.NoError(t, err)

	require.NoError(t, b.AppendUpdate(&core.ModificationCommand{
		Table: "people",
		State: core.StateModified,
		Columns: []core.ColumnModification{
			{ColumnName: "name", Value: "Dan", IsWrite: true},
			{ColumnName: "id", OriginalValue: 4, IsCondition: true},
			{ColumnName: "nick", IsCondition: true},
		},
	}))
	require.NoError(t, b.AppendUpdate(&core.ModificationCommand{
		Table:   "people",
		State:   core.StateModified,
		Columns: []core.ColumnModification{{ColumnName: "active", Value: false, IsWrite: true}},
	}))

	assert.Equal(t, "UPDATE \"people\" SET \"name\" = $1\nWHERE \"id\" = $2 AND \"nick\" IS NULL;\nUPDATE \"people\" SET \"active\" = $3;", b.Command().SQL)

	stmts := b.Statements()
	require.Len(t, stmts, 2)
	assert.Equal(t, "UPDATE \"people\" SET \"active\" = $1;", stmts[1].SQL)
	assert.Equal(t, "p2", stmts[1].Parameters[0].Name)
	assert.Equal(t, ResultAffected, stmts[1].Result)
	assert.Empty(t, b.ResultSets())
}

func TestAppendUpdate_WrittenTokenComparesOriginalValue(t *testing.T) {
	b, err := newGenerator(t, postgres.Postgres).NewBatch()
	require.NoError(t, err)

	require.NoError(t, b.AppendUpdate(&core.ModificationCommand{
		Table: "People",
		State: core.StateModified,
		Columns: []core.ColumnModification{
			{ColumnName: "Version", Value: "v2", IsWrite: true, IsCondition: true, IsConcurrencyToken: true},
			{ColumnName: "Id", OriginalValue: 1, IsCondition: true, IsKey: true},
		},
	}))
	require.NoError(t, b.AppendUpdate(&core.ModificationCommand{
		Table: "People",
		State: core.StateModified,
		Columns: []core.ColumnModification{
			{ColumnName: "Version", Value: "v3", OriginalValue: "v2", IsWrite: true, IsCondition: true, IsConcurrencyToken: true},
			{ColumnName: "Id", OriginalValue: 1, IsCondition: true, IsKey: true},
		},
	}))

	cmd := b.Command()
	assert.Equal(t, "UPDATE \"People\" SET \"Version\" = $1\nWHERE \"Version\" IS NULL AND \"Id\" = $2;\n"+
		"UPDATE \"People\" SET \"Version\" = $3\nWHERE \"Version\" = $4 AND \"Id\" = $5;", cmd.SQL)
	assert.Equal(t, []any{"v2", 1, "v3", "v2", 1}, cmd.Args())
}

func TestAppendDelete(t *testing.T) {
	b, err := newGenerator(t, sqlserver.SQLServer).NewBatch()
	require.NoError(t, err)

	require.NoError(t, b.AppendDelete(&core.ModificationCommand{
		Table:   "People",
		Schema:  "dbo",
		State:   core.StateDeleted,
		Columns: []core.ColumnModification{{ColumnName: "Id", OriginalValue: 9, IsCondition: true, IsKey: true}},
	}))

	assert.Equal(t, "DELETE FROM [dbo].[People]\nWHERE [Id] = @p0;\nSELECT @@ROWCOUNT;", b.Command().SQL)
	assert.Equal(t, []ResultSetMapping{{Commands: []int{0}, Kind: ResultRowCount}}, b.ResultSets())
}

func TestAppend_WarnsWithoutConditions(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	b, err := New(postgres.Postgres, WithLogger(logger)).NewBatch()
	require.NoError(t, err)

	require.NoError(t, b.AppendDelete(&core.ModificationCommand{Table: "people", State: core.StateDeleted}))
	require.NoError(t, b.AppendUpdate(&core.ModificationCommand{
		Table:   "orders",
		State:   core.StateModified,
		Columns: []core.ColumnModification{{ColumnName: "open", Value: false, IsWrite: true}},
	}))

	assert.Contains(t, b.Command().SQL, "DELETE FROM \"people\";")
	assert.Contains(t, logs.String(), `msg="delete without condition columns" table=people`)
	assert.Contains(t, logs.String(), `msg="update without condition columns" table=orders`)
}

func TestAppendCommands_GroupsConsecutiveInserts(t *testing.T) {
	g := newGenerator(t, sqlserver.SQLServer)
	update := &core.ModificationCommand{
		Table: "People",
		State: core.StateModified,
		Columns: []core.ColumnModification{
			{ColumnName: "Name", Value: "Eve", IsWrite: true},
			{ColumnName: "Id", OriginalValue: 1, IsCondition: true},
		},
	}
	order := &core.ModificationCommand{
		Table:   "Orders",
		State:   core.StateAdded,
		Columns: []core.ColumnModification{{ColumnName: "Total", Value: 10, IsWrite: true}},
	}
	del := &core.ModificationCommand{
		Table:   "People",
		State:   core.StateDeleted,
		Columns: []core.ColumnModification{{ColumnName: "Id", OriginalValue: 2, IsCondition: true}},
	}

	b, err := g.RenderCommands([]*core.ModificationCommand{personInsert("A"), personInsert("B"), update, order, del})
	require.NoError(t, err)

	assert.Equal(t, 5, b.Len())
	assert.Equal(t, []ResultSetMapping{
		{Commands: []int{0, 1}, Kind: ResultCapture, Columns: []string{"Id"}},
		{Commands: []int{2}, Kind: ResultRowCount},
		{Commands: []int{3}, Kind: ResultRowCount},
		{Commands: []int{4}, Kind: ResultRowCount},
	}, b.ResultSets())

	names := map[string]bool{}
	for _, p := range b.Command().Parameters {
		assert.False(t, names[p.Name], "duplicate parameter %s", p.Name)
		names[p.Name] = true
	}
	assert.Len(t, names, 6)
}

func TestRenderBulkInsert_IsDeterministic(t *testing.T) {
	g := newGenerator(t, sqlserver.SQLServer)
	rows := []*core.ModificationCommand{personInsert("Alice"), personInsert("Bob")}

	first, _, err := g.RenderBulkInsert("People", "", rows)
	require.NoError(t, err)
	second, _, err := g.RenderBulkInsert("People", "", rows)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []*core.ModificationCommand{personInsert("Alice"), personInsert("Bob")}, rows)
}

func TestErrors(t *testing.T) {
	_, err := New(oracle.Oracle).NewBatch()
	assert.ErrorIs(t, err, ErrBatchUnsupported)

	_, _, err = New(oracle.Oracle).RenderBulkInsert("People", "", []*core.ModificationCommand{personInsert("A")})
	assert.ErrorIs(t, err, ErrBatchUnsupported)

	_, _, err = New(sqlserver.SQLServer).RenderBulkInsert("People", "", nil)
	assert.ErrorIs(t, err, ErrNoRows)

	untyped := &core.ModificationCommand{
		Table:   "People",
		State:   core.StateAdded,
		Columns: []core.ColumnModification{{ColumnName: "Id", IsRead: true}},
	}
	_, _, err = New(sqlserver.SQLServer).RenderBulkInsert("People", "", []*core.ModificationCommand{untyped})
	assert.ErrorIs(t, err, ErrMissingCaptureType)

	b, err := New(sqlite.SQLite).NewBatch()
	require.NoError(t, err)
	err = b.AppendUpdate(&core.ModificationCommand{Table: "People", State: core.StateModified})
	assert.ErrorIs(t, err, ErrNoWriteColumns)
}
