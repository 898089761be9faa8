package postgres

import (
	"testing"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
	"github.com/leapstack-labs/relsql/pkg/sqlgen"
	"github.com/leapstack-labs/relsql/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_Registered(t *testing.T) {
	d, ok := dialect.Get("postgres")
	require.True(t, ok)
	assert.Same(t, Postgres, d)
	assert.Equal(t, "", Postgres.Batch.RowCountSQL)
}

func TestPostgres_NumberedParameters(t *testing.T) {
	id := &core.Parameter{Name: "id", Value: 7}
	sel := &core.SelectExpr{
		Tables: []core.TableSource{&core.TableExpr{Name: "people", Alias: "p"}},
		Predicate: &core.BinaryExpr{
			Left:  &core.BinaryExpr{Left: &core.ColumnRef{Table: "p", Column: "id"}, Op: token.EQ, Right: id},
			Op:    token.OR,
			Right: &core.BinaryExpr{Left: &core.ColumnRef{Table: "p", Column: "parent_id"}, Op: token.EQ, Right: id},
		},
		Limit:  &core.Parameter{Name: "take", Value: 5},
		Offset: &core.Literal{Value: 10},
	}

	cmd, err := sqlgen.New(Postgres).Generate(sel)
	require.NoError(t, err)
	assert.Equal(t, `SELECT 1
FROM "people" AS "p"
WHERE ("p"."id" = $1) OR ("p"."parent_id" = $1)
LIMIT $2 OFFSET 10`, cmd.SQL)
	assert.Equal(t, []any{7, 5}, cmd.Args())
}

func TestPostgres_LateralAndLiterals(t *testing.T) {
	sel := &core.SelectExpr{
		Tables: []core.TableSource{&core.TableExpr{Name: "people", Alias: "p"}},
		Joins: []*core.Join{{Kind: core.JoinCrossApply, Table: &core.SelectExpr{
			Alias:  "o",
			Tables: []core.TableSource{&core.TableExpr{Name: "orders"}},
		}}},
	}
	cmd, err := sqlgen.New(Postgres).Generate(sel)
	require.NoError(t, err)
	assert.Contains(t, cmd.SQL, "CROSS JOIN LATERAL (")

	assert.Equal(t, `'\x0a'::bytea`, sqlgen.FormatLiteral(Postgres, []byte{10}, nil))
	assert.Equal(t, "TRUE", sqlgen.FormatLiteral(Postgres, true, nil))
}
