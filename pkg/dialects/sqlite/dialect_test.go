package sqlite

import (
	"testing"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
	"github.com/leapstack-labs/relsql/pkg/sqlgen"
	"github.com/leapstack-labs/relsql/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_Registered(t *testing.T) {
	d, ok := dialect.Get("sqlite")
	require.True(t, ok)
	assert.Same(t, SQLite, d)
	assert.Equal(t, dialect.CaptureReturning, SQLite.Batch.Capture)
}

func TestSQLite_Paging(t *testing.T) {
	tests := []struct {
		name   string
		limit  core.Expr
		offset core.Expr
		want   string
	}{
		{"limit", &core.Literal{Value: 5}, nil, "\nLIMIT 5"},
		{"offset only", nil, &core.Parameter{Name: "skip", Value: 3}, "\nLIMIT -1 OFFSET @skip"},
		{"both", &core.Literal{Value: 5}, &core.Literal{Value: 3}, "\nLIMIT 5 OFFSET 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := sqlgen.New(SQLite).Generate(&core.SelectExpr{
				Tables: []core.TableSource{&core.TableExpr{Name: "People"}},
				Limit:  tt.limit,
				Offset: tt.offset,
			})
			require.NoError(t, err)
			assert.Equal(t, "SELECT 1\nFROM \"People\""+tt.want, cmd.SQL)
		})
	}
}

func TestSQLite_Expressions(t *testing.T) {
	str := &core.TypeMapping{Kind: core.KindString}
	concat := &core.BinaryExpr{
		Left:  &core.ColumnRef{Column: "First", Type: str},
		Op:    token.PLUS,
		Right: &core.ColumnRef{Column: "Last", Type: str},
	}
	cmd, err := sqlgen.New(SQLite).GenerateExpr(concat)
	require.NoError(t, err)
	assert.Equal(t, `"First" || "Last"`, cmd.SQL)

	assert.Equal(t, "1", sqlgen.FormatLiteral(SQLite, true, nil))
	assert.Equal(t, "0", sqlgen.FormatLiteral(SQLite, false, nil))
	assert.Equal(t, "X'FF'", sqlgen.FormatLiteral(SQLite, []byte{255}, nil))
}
