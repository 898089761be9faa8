package sqlgen

import (
	"errors"
	"sync"
	"testing"

	"github.com/leapstack-labs/relsql/internal/testutil"
	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
	"github.com/leapstack-labs/relsql/pkg/spi"
	"github.com/leapstack-labs/relsql/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func col(table, name string) *core.ColumnRef {
	return &core.ColumnRef{Table: table, Column: name}
}

func lit(v any) *core.Literal {
	return &core.Literal{Value: v}
}

func bin(l core.Expr, op token.TokenType, r core.Expr) *core.BinaryExpr {
	return &core.BinaryExpr{Left: l, Op: op, Right: r}
}

func people() *core.TableExpr {
	return &core.TableExpr{Name: "People", Alias: "p"}
}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	d := dialect.NewDialect("ansi").ConcatOperator("||").Build()
	return New(d, WithLogger(testutil.NewTestLogger(t)))
}

func render(t *testing.T, g *Generator, sel *core.SelectExpr) *core.Command {
	t.Helper()
	cmd, err := g.Generate(sel)
	require.NoError(t, err)
	return cmd
}

func renderExpr(t *testing.T, g *Generator, e core.Expr) string {
	t.Helper()
	cmd, err := g.GenerateExpr(e)
	require.NoError(t, err)
	return cmd.SQL
}

func TestGenerate_BasicSelect(t *testing.T) {
	g := newTestGenerator(t)
	sel := &core.SelectExpr{
		Projection: []core.ProjectionItem{
			{Expr: col("p", "Id"), Alias: "Id"},
			{Expr: col("p", "Name"), Alias: "FullName"},
		},
		Tables:    []core.TableSource{people()},
		Predicate: bin(col("p", "Age"), token.GT, &core.Parameter{Name: "age", Value: 18}),
		OrderBy: []core.Ordering{
			{Expr: col("p", "Name")},
			{Expr: col("p", "Age"), Descending: true},
		},
	}

	cmd := render(t, g, sel)

	assert.Equal(t, `SELECT "p"."Id", "p"."Name" AS "FullName"
FROM "People" AS "p"
WHERE "p"."Age" > ?
ORDER BY "p"."Name", "p"."Age" DESC`, cmd.SQL)
	require.Len(t, cmd.Parameters, 1)
	assert.Equal(t, "age", cmd.Parameters[0].Name)
	assert.Equal(t, []any{18}, cmd.Args())
}

func TestGenerate_EmptyProjectionAndDistinct(t *testing.T) {
	g := newTestGenerator(t)
	cmd := render(t, g, &core.SelectExpr{Distinct: true, Tables: []core.TableSource{&core.TableExpr{Schema: "dbo", Name: "T"}}})
	assert.Equal(t, "SELECT DISTINCT 1\nFROM \"dbo\".\"T\"", cmd.SQL)
}

func TestGenerate_GroupByHaving(t *testing.T) {
	g := newTestGenerator(t)
	count := &core.FuncCall{Name: "COUNT", Args: []core.Expr{&core.StarExpr{}}}
	sel := &core.SelectExpr{
		Projection: []core.ProjectionItem{{Expr: col("", "City")}, {Expr: count, Alias: "n"}},
		Tables:     []core.TableSource{&core.TableExpr{Name: "People"}},
		GroupBy:    []core.Expr{col("", "City")},
		Having:     bin(count, token.GT, lit(1)),
	}
	assert.Equal(t, `SELECT "City", COUNT(*) AS "n"
FROM "People"
GROUP BY "City"
HAVING COUNT(*) > 1`, render(t, g, sel).SQL)
}

func TestGenerate_ConstantOrderingsDropped(t *testing.T) {
	g := newTestGenerator(t)
	tests := []struct {
		name     string
		orderBy  []core.Ordering
		wantTail string
	}{
		{"only constants", []core.Ordering{{Expr: lit(1)}, {Expr: &core.Parameter{Name: "x", Value: 2}, Descending: true}}, `FROM "People"`},
		{"mixed", []core.Ordering{{Expr: lit(1)}, {Expr: col("", "Name"), Descending: true}}, "ORDER BY \"Name\" DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := render(t, g, &core.SelectExpr{
				Projection: []core.ProjectionItem{{Expr: col("", "Name")}},
				Tables:     []core.TableSource{&core.TableExpr{Name: "People"}},
				OrderBy:    tt.orderBy,
			})
			assert.NotContains(t, cmd.SQL, "ORDER BY 1")
			assert.Contains(t, cmd.SQL, tt.wantTail)
			assert.Empty(t, cmd.Parameters)
		})
	}
}

func TestGenerate_DefaultPagingIsNoOp(t *testing.T) {
	g := newTestGenerator(t)
	cmd := render(t, g, &core.SelectExpr{
		Tables: []core.TableSource{&core.TableExpr{Name: "People"}},
		Limit:  lit(10),
		Offset: lit(5),
	})
	assert.Equal(t, "SELECT 1\nFROM \"People\"", cmd.SQL)
}

func TestGenerateExpr_Operators(t *testing.T) {
	g := newTestGenerator(t)
	str := &core.TypeMapping{Kind: core.KindString}
	a, b, c := col("", "a"), col("", "b"), col("", "c")

	tests := []struct {
		name string
		expr core.Expr
		want string
	}{
		{"nested binary parenthesized", bin(bin(a, token.PLUS, b), token.STAR, c), `("a" + "b") * "c"`},
		{"coalesce", bin(a, token.COALESCE, b), `COALESCE("a", "b")`},
		{"coalesce operand not parenthesized", bin(bin(a, token.COALESCE, b), token.EQ, lit(1)), `COALESCE("a", "b") = 1`},
		{"not equal", bin(a, token.NE, b), `"a" <> "b"`},
		{"logical", bin(bin(a, token.EQ, lit(1)), token.AND, bin(b, token.EQ, lit(2))), `("a" = 1) AND ("b" = 2)`},
		{"string concat", bin(&core.ColumnRef{Column: "first", Type: str}, token.PLUS, lit(" ")), `"first" || ' '`},
		{"numeric plus", bin(a, token.PLUS, lit(1)), `"a" + 1`},
		{"negate", &core.UnaryExpr{Op: token.MINUS, Expr: a}, `-"a"`},
		{"negate binary", &core.UnaryExpr{Op: token.MINUS, Expr: bin(a, token.PLUS, b)}, `-("a" + "b")`},
		{"not", &core.UnaryExpr{Op: token.NOT, Expr: bin(a, token.EQ, b)}, `NOT ("a" = "b")`},
		{"not in", &core.UnaryExpr{Op: token.NOT, Expr: &core.InExpr{Expr: a, Values: []core.Expr{lit(1), lit(2)}}}, `"a" NOT IN (1, 2)`},
		{"not is null", &core.UnaryExpr{Op: token.NOT, Expr: &core.IsNullExpr{Expr: a}}, `"a" IS NOT NULL`},
		{"is null", &core.IsNullExpr{Expr: a}, `"a" IS NULL`},
		{"like escape", &core.LikeExpr{Expr: a, Pattern: lit("x!%%"), Escape: lit("!")}, `"a" LIKE 'x!%%' ESCAPE '!'`},
		{"not like", &core.UnaryExpr{Op: token.NOT, Expr: &core.LikeExpr{Expr: a, Pattern: lit("x%")}}, `"a" NOT LIKE 'x%'`},
		{"cast", &core.CastExpr{Expr: a, Type: &core.TypeMapping{StoreType: "INTEGER"}}, `CAST("a" AS INTEGER)`},
		{"fragment", &core.Fragment{SQL: "DEFAULT"}, "DEFAULT"},
		{"qualified star", &core.StarExpr{Table: "p"}, `"p".*`},
		{"nil", nil, "NULL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderExpr(t, g, tt.expr))
		})
	}
}

func TestGenerateExpr_Case(t *testing.T) {
	g := newTestGenerator(t)
	searched := &core.CaseExpr{
		Whens: []core.WhenClause{{Condition: bin(col("", "x"), token.EQ, lit(1)), Result: lit("a")}},
		Else:  lit("b"),
	}
	assert.Equal(t, "CASE\n    WHEN \"x\" = 1 THEN 'a'\n    ELSE 'b'\nEND", renderExpr(t, g, searched))

	simple := &core.CaseExpr{
		Operand: col("", "x"),
		Whens:   []core.WhenClause{{Condition: lit(1), Result: lit(true)}},
	}
	assert.Equal(t, "CASE \"x\"\n    WHEN 1 THEN TRUE\nEND", renderExpr(t, g, simple))
}

func TestGenerateExpr_Functions(t *testing.T) {
	g := newTestGenerator(t)
	tests := []struct {
		name string
		fn   *core.FuncCall
		want string
	}{
		{"builtin any case", &core.FuncCall{Name: "upper", Args: []core.Expr{col("", "n")}}, `upper("n")`},
		{"user function delimited", &core.FuncCall{Name: "Score", Args: []core.Expr{lit(1), lit(2)}}, `"Score"(1, 2)`},
		{"schema function", &core.FuncCall{Schema: "dbo", Name: "Score"}, `"dbo"."Score"()`},
		{"instance method", &core.FuncCall{Instance: col("", "geo"), Name: "STDistance", Args: []core.Expr{lit(0)}}, `"geo".STDistance(0)`},
		{"niladic", &core.FuncCall{Name: "CURRENT_TIMESTAMP", Niladic: true}, "CURRENT_TIMESTAMP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderExpr(t, g, tt.fn))
		})
	}
}

func TestGenerate_Subqueries(t *testing.T) {
	g := newTestGenerator(t)
	inner := &core.SelectExpr{
		Alias:      "t",
		Projection: []core.ProjectionItem{{Expr: col("", "Id")}},
		Tables:     []core.TableSource{&core.TableExpr{Name: "People"}},
	}
	sel := &core.SelectExpr{
		Projection: []core.ProjectionItem{{Expr: col("t", "Id")}},
		Tables:     []core.TableSource{inner},
		Predicate: &core.ExistsExpr{Query: &core.SelectExpr{
			Tables: []core.TableSource{&core.TableExpr{Name: "Orders", Alias: "o"}},
		}},
	}

	assert.Equal(t, `SELECT "t"."Id"
FROM (
    SELECT "Id"
    FROM "People"
) AS "t"
WHERE EXISTS (
    SELECT 1
    FROM "Orders" AS "o"
)`, render(t, g, sel).SQL)
}

func TestGenerateExpr_InSubquery(t *testing.T) {
	g := newTestGenerator(t)
	in := &core.InExpr{Expr: col("", "Id"), Query: &core.SelectExpr{
		Projection: []core.ProjectionItem{{Expr: col("", "PersonId")}},
		Tables:     []core.TableSource{&core.TableExpr{Name: "Orders"}},
	}}
	assert.Equal(t, "\"Id\" IN (\n    SELECT \"PersonId\"\n    FROM \"Orders\"\n)", renderExpr(t, g, in))

	not := &core.UnaryExpr{Op: token.NOT, Expr: &core.ExistsExpr{Query: &core.SelectExpr{}}}
	assert.Equal(t, "NOT EXISTS (\n    SELECT 1\n)", renderExpr(t, g, not))
}

func TestGenerate_Joins(t *testing.T) {
	g := newTestGenerator(t)
	orders := &core.TableExpr{Name: "Orders", Alias: "o"}
	on := bin(col("o", "PersonId"), token.EQ, col("p", "Id"))

	tests := []struct {
		name string
		join *core.Join
		want string
	}{
		{"inner", &core.Join{Kind: core.JoinInner, Table: orders, On: on}, `INNER JOIN "Orders" AS "o" ON "o"."PersonId" = "p"."Id"`},
		{"left", &core.Join{Kind: core.JoinLeft, Table: orders, On: on}, `LEFT JOIN "Orders" AS "o" ON "o"."PersonId" = "p"."Id"`},
		{"cross", &core.Join{Kind: core.JoinCross, Table: orders}, `CROSS JOIN "Orders" AS "o"`},
		{"cross apply", &core.Join{Kind: core.JoinCrossApply, Table: orders}, `CROSS APPLY "Orders" AS "o"`},
		{"outer apply", &core.Join{Kind: core.JoinOuterApply, Table: orders}, `OUTER APPLY "Orders" AS "o"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := render(t, g, &core.SelectExpr{
				Tables: []core.TableSource{people()},
				Joins:  []*core.Join{tt.join},
			})
			assert.Equal(t, "SELECT 1\nFROM \"People\" AS \"p\"\n"+tt.want, cmd.SQL)
		})
	}
}

func TestGenerate_JoinWithoutPredicate(t *testing.T) {
	g := newTestGenerator(t)
	_, err := g.Generate(&core.SelectExpr{
		Tables: []core.TableSource{people()},
		Joins:  []*core.Join{{Kind: core.JoinInner, Table: &core.TableExpr{Name: "Orders"}}},
	})
	assert.ErrorIs(t, err, ErrMissingJoinPredicate)
}

func TestGenerate_MultipleTables(t *testing.T) {
	g := newTestGenerator(t)
	cmd := render(t, g, &core.SelectExpr{
		Tables: []core.TableSource{&core.TableExpr{Name: "A"}, &core.TableExpr{Name: "B"}},
	})
	assert.Equal(t, "SELECT 1\nFROM \"A\",\n\"B\"", cmd.SQL)
}

func TestGenerate_FromSQL(t *testing.T) {
	g := newTestGenerator(t)
	sel := &core.SelectExpr{
		Projection: []core.ProjectionItem{{Expr: &core.StarExpr{}}},
		Tables: []core.TableSource{&core.FromSQLExpr{
			SQL:   "SELECT * FROM People\nWHERE Id = {0} AND Kind = {1}",
			Args:  []core.Expr{&core.Parameter{Name: "id", Value: 5}, lit("x")},
			Alias: "p",
		}},
	}

	cmd := render(t, g, sel)

	assert.Equal(t, `SELECT *
FROM (
    SELECT * FROM People
    WHERE Id = ? AND Kind = 'x'
) AS "p"`, cmd.SQL)
	assert.Equal(t, []any{5}, cmd.Args())
}

func TestGenerate_FromSQLArgsBindInTextOrder(t *testing.T) {
	args := []core.Expr{
		&core.Parameter{Name: "id", Value: 5},
		&core.Parameter{Name: "kind", Value: "x"},
	}
	sql := "SELECT * FROM People WHERE Kind = {1} AND Id = {0} OR Id2 = {0} OR Tag = '{7}'"

	tests := []struct {
		name     string
		dialect  *dialect.Dialect
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "positional",
			dialect:  dialect.NewDialect("positional").Build(),
			wantSQL:  "SELECT * FROM People WHERE Kind = ? AND Id = ? OR Id2 = ? OR Tag = '{7}'",
			wantArgs: []any{"x", 5, 5},
		},
		{
			name:     "named",
			dialect:  dialect.NewDialect("named").PlaceholderStyle(core.PlaceholderAt).Build(),
			wantSQL:  "SELECT * FROM People WHERE Kind = @kind AND Id = @id OR Id2 = @id OR Tag = '{7}'",
			wantArgs: []any{"x", 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.dialect, WithLogger(testutil.NewTestLogger(t)))
			cmd := render(t, g, &core.SelectExpr{
				Projection: []core.ProjectionItem{{Expr: &core.StarExpr{}}},
				Tables:     []core.TableSource{&core.FromSQLExpr{SQL: sql, Args: args}},
			})

			assert.Equal(t, "SELECT *\nFROM (\n    "+tt.wantSQL+"\n)", cmd.SQL)
			assert.Equal(t, tt.wantArgs, cmd.Args())
		})
	}
}

func TestGenerate_FromSQLNotComposable(t *testing.T) {
	g := newTestGenerator(t)
	_, err := g.Generate(&core.SelectExpr{
		Tables: []core.TableSource{&core.FromSQLExpr{SQL: "EXEC GetPeople", Alias: "p"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonComposableSQL)
}

func TestGenerate_SetOperation(t *testing.T) {
	g := newTestGenerator(t)
	right := &core.SelectExpr{
		Projection: []core.ProjectionItem{{Expr: col("", "Name")}},
		Tables:     []core.TableSource{&core.TableExpr{Name: "Staff"}},
	}
	sel := &core.SelectExpr{
		Projection: []core.ProjectionItem{{Expr: col("", "Name")}},
		Tables:     []core.TableSource{&core.TableExpr{Name: "People"}},
		SetOp:      &core.SetOperation{Kind: core.SetOpUnionAll, Right: right},
	}
	assert.Equal(t, "SELECT \"Name\"\nFROM \"People\"\nUNION ALL\nSELECT \"Name\"\nFROM \"Staff\"", render(t, g, sel).SQL)
}

func TestGenerate_BoolCoalesceProjectionCast(t *testing.T) {
	g := newTestGenerator(t)
	flag := &core.BinaryExpr{
		Left:  col("", "IsActive"),
		Op:    token.COALESCE,
		Right: lit(false),
		Type:  &core.TypeMapping{Kind: core.KindBool},
	}
	cmd := render(t, g, &core.SelectExpr{
		Projection: []core.ProjectionItem{{Expr: flag, Alias: "Active"}},
		Tables:     []core.TableSource{&core.TableExpr{Name: "People"}},
	})
	assert.Equal(t, "SELECT CAST(COALESCE(\"IsActive\", FALSE) AS BOOLEAN) AS \"Active\"\nFROM \"People\"", cmd.SQL)
}

func TestGenerate_Errors(t *testing.T) {
	g := newTestGenerator(t)

	_, err := g.GenerateExpr(&core.CastExpr{Expr: col("", "a")})
	assert.ErrorIs(t, err, ErrMissingStoreType)

	_, err = g.Generate(&core.SelectExpr{Tables: []core.TableSource{nil}})
	assert.ErrorIs(t, err, ErrUnsupportedNode)

	_, err = g.GenerateExpr(&core.UnaryExpr{Op: token.PLUS, Expr: lit(1)})
	assert.True(t, errors.Is(err, ErrUnsupportedNode))
}

func TestGenerate_HooksReplaceDefaults(t *testing.T) {
	var hooked []string
	d := dialect.NewDialect("hooked").
		Top(func(g2 spi.GeneratorOps, _ *core.SelectExpr) { hooked = append(hooked, "top"); g2.Write("/*top*/ ") }).
		Build()
	g := New(d)
	cmd := render(t, g, &core.SelectExpr{Tables: []core.TableSource{&core.TableExpr{Name: "T"}}})
	assert.Equal(t, "SELECT /*top*/ 1\nFROM \"T\"", cmd.SQL)
	assert.Equal(t, []string{"top"}, hooked)
}

func buildTree() *core.SelectExpr {
	return &core.SelectExpr{
		Projection: []core.ProjectionItem{
			{Expr: col("p", "Name")},
			{Expr: bin(col("p", "Age"), token.PLUS, &core.Parameter{Name: "delta", Value: 1}), Alias: "NextAge"},
		},
		Tables:    []core.TableSource{people()},
		Predicate: &core.InExpr{Expr: col("p", "Id"), Values: []core.Expr{&core.Parameter{Name: "a", Value: 1}, &core.Parameter{Name: "b", Value: 2}}},
		OrderBy:   []core.Ordering{{Expr: lit(1)}, {Expr: col("p", "Name")}},
	}
}

func TestGenerate_PureAndConcurrent(t *testing.T) {
	g := newTestGenerator(t)
	tree := buildTree()
	first := render(t, g, tree)
	assert.Equal(t, buildTree(), tree, "rendering must not mutate the tree")

	var wg sync.WaitGroup
	results := make([]*core.Command, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cmd, err := g.Generate(tree)
			if err == nil {
				results[i] = cmd
			}
		}(i)
	}
	wg.Wait()

	for _, cmd := range results {
		require.NotNil(t, cmd)
		assert.Equal(t, first, cmd)
	}
}
