package sqlgen

import (
	"errors"
	"fmt"
)

var (
	// ErrNonComposableSQL is returned when raw SQL cannot be used as a derived table.
	ErrNonComposableSQL = errors.New("raw SQL is not composable")

	// ErrUnsupportedNode is returned for plan nodes the generator cannot render.
	ErrUnsupportedNode = errors.New("unsupported plan node")

	// ErrMissingJoinPredicate is returned for inner and left joins without ON.
	ErrMissingJoinPredicate = errors.New("join requires a predicate")

	// ErrMissingStoreType is returned for casts without a target store type.
	ErrMissingStoreType = errors.New("cast requires a store type")
)

// NonComposableSQLError identifies a raw SQL fragment that does not start with SELECT.
type NonComposableSQLError struct {
	SQL string
}

func (e *NonComposableSQLError) Error() string {
	sql := e.SQL
	if len(sql) > 60 {
		sql = sql[:60] + "..."
	}
	return fmt.Sprintf("%s: %q must start with SELECT to be used as a derived table; "+
		"run non-composable statements on their own instead", ErrNonComposableSQL, sql)
}

// Unwrap returns ErrNonComposableSQL.
func (e *NonComposableSQLError) Unwrap() error {
	return ErrNonComposableSQL
}
