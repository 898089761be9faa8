package dialect

import "github.com/leapstack-labs/relsql/pkg/core"

// CaptureStyle selects how a dialect returns server-generated values from a write.
type CaptureStyle int

const (
	// CaptureUnsupported means the dialect cannot render batched writes.
	CaptureUnsupported CaptureStyle = iota
	// CaptureTableVariable declares a table variable, routes OUTPUT ... INTO it
	// between the header and the values, then selects from it.
	CaptureTableVariable
	// CaptureReturning appends RETURNING after the values or predicate.
	CaptureReturning
)

// String returns the capture style name.
func (c CaptureStyle) String() string {
	switch c {
	case CaptureTableVariable:
		return "table-variable"
	case CaptureReturning:
		return "returning"
	default:
		return "unsupported"
	}
}

// BatchConfig describes a dialect's write-batching capabilities.
type BatchConfig struct {
	Capture CaptureStyle

	// StatementTerminator ends every statement (usually ";").
	StatementTerminator string

	// RowCountSQL is the affected-row-count query appended to writes that read
	// nothing back. Empty means the count comes from the driver's result.
	RowCountSQL string

	// MultipleResultSets reports whether the whole batch can be sent as one
	// command and read back with successive result sets.
	MultipleResultSets bool

	// CaptureType maps a read column's type to the type declared in the capture
	// structure. Nil uses the column's store type unchanged.
	CaptureType func(t *core.TypeMapping) string
}

// Supported reports whether batched writes can be rendered.
func (b BatchConfig) Supported() bool {
	return b.Capture != CaptureUnsupported
}

// CaptureTypeFor returns the declared capture type for a read column.
func (b BatchConfig) CaptureTypeFor(t *core.TypeMapping) string {
	if b.CaptureType != nil {
		return b.CaptureType(t)
	}
	if t == nil {
		return ""
	}
	return t.StoreType
}
