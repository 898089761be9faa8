// Package dialect provides SQL dialect configuration and render hooks.
//
// This package contains the public contract for dialect definitions used by the
// SQL and batch generators. A Dialect is pure data plus an optional set of
// render hooks; a nil hook means the shared default applies. Concrete dialects
// are registered from pkg/dialects/*/ packages.
//
// Dialects are immutable after Build and safe for concurrent use.
package dialect

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/spi"
)

// BinaryLiteralStyle selects how byte slices are written as literals.
type BinaryLiteralStyle int

const (
	// BinaryHex writes 0xDEADBEEF.
	BinaryHex BinaryLiteralStyle = iota
	// BinaryXQuote writes X'DEADBEEF'.
	BinaryXQuote
	// BinaryBytea writes '\xdeadbeef'::bytea.
	BinaryBytea
	// BinaryHextoraw writes HEXTORAW('DEADBEEF').
	BinaryHextoraw
)

// LiteralConfig holds the dialect's literal spellings.
type LiteralConfig struct {
	True         string // e.g. "TRUE", "1", "CAST(1 AS bit)"
	False        string
	StringPrefix string // "N" for national character literals
	Binary       BinaryLiteralStyle
	// DateTimeLayout is a time.Format layout; DateTimeFormat wraps the formatted
	// value, e.g. "'%s'" or "TIMESTAMP '%s'".
	DateTimeLayout string
	DateTimeFormat string
}

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name          string
	Identifiers   core.IdentifierConfig
	Placeholder   core.PlaceholderStyle
	DefaultSchema string
	Literals      LiteralConfig

	// AliasSeparator sits between an expression or source and its alias.
	// It may be " AS ", a single space, or empty.
	AliasSeparator string

	// ConcatOperator is the native string concatenation token (e.g. "||").
	// Empty means "+" is used for strings as well.
	ConcatOperator string

	// BoolStoreType is the cast target for boolean expressions without a store type.
	BoolStoreType string

	Batch BatchConfig

	builtins  map[string]struct{} // upper-cased, frozen after Build
	functions map[string]spi.FunctionHandler

	top         spi.TopHandler
	limitOffset spi.LimitOffsetHandler
	ordering    spi.OrderingHandler
	orderBy     spi.OrderByHandler
	operator    spi.OperatorHandler
	binary      spi.BinaryHandler
	function    spi.FunctionHandler
	pseudoFrom  spi.PseudoFromHandler
	join        spi.JoinHandler
	projection  spi.ProjectionHandler
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	if d.Identifiers.Quote == "" {
		return name
	}
	// Escape any existing quote end characters in the name (e.g., ] -> ]])
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteQualified quotes schema.name, omitting an empty schema.
func (d *Dialect) QuoteQualified(schema, name string) string {
	if schema == "" {
		return d.QuoteIdentifier(name)
	}
	return d.QuoteIdentifier(schema) + "." + d.QuoteIdentifier(name)
}

// FormatPlaceholder returns the placeholder for a parameter.
// index is the 1-based position of the parameter in the command.
func (d *Dialect) FormatPlaceholder(name string, index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	case core.PlaceholderAt:
		return "@" + name
	case core.PlaceholderColon:
		return ":" + name
	default: // PlaceholderQuestion
		return "?"
	}
}

// NamedParameters reports whether placeholders carry the parameter name.
func (d *Dialect) NamedParameters() bool {
	return d.Placeholder == core.PlaceholderAt || d.Placeholder == core.PlaceholderColon
}

// IsBuiltinFunction reports whether a function name is never delimited.
// The check is case-insensitive.
func (d *Dialect) IsBuiltinFunction(name string) bool {
	_, ok := d.builtins[strings.ToUpper(name)]
	return ok
}

// BuiltinFunctions returns the builtin allow-list (upper-cased, unsorted).
func (d *Dialect) BuiltinFunctions() []string {
	names := make([]string, 0, len(d.builtins))
	for n := range d.builtins {
		names = append(names, n)
	}
	return names
}

// FunctionHandler returns the handler registered for a function name, if any.
func (d *Dialect) FunctionHandler(name string) spi.FunctionHandler {
	return d.functions[strings.ToUpper(name)]
}

// ---------- Hook accessors (nil means default) ----------

// TopHandler returns the TOP hook.
func (d *Dialect) TopHandler() spi.TopHandler { return d.top }

// LimitOffsetHandler returns the paging hook.
func (d *Dialect) LimitOffsetHandler() spi.LimitOffsetHandler { return d.limitOffset }

// OrderingHandler returns the ordering hook.
func (d *Dialect) OrderingHandler() spi.OrderingHandler { return d.ordering }

// OrderByHandler returns the ORDER BY hook.
func (d *Dialect) OrderByHandler() spi.OrderByHandler { return d.orderBy }

// OperatorHandler returns the operator-token hook.
func (d *Dialect) OperatorHandler() spi.OperatorHandler { return d.operator }

// BinaryHandler returns the binary-expression hook.
func (d *Dialect) BinaryHandler() spi.BinaryHandler { return d.binary }

// GenericFunctionHandler returns the hook consulted for every function call
// after name-specific handlers.
func (d *Dialect) GenericFunctionHandler() spi.FunctionHandler { return d.function }

// PseudoFromHandler returns the pseudo-from hook.
func (d *Dialect) PseudoFromHandler() spi.PseudoFromHandler { return d.pseudoFrom }

// JoinHandler returns the join hook.
func (d *Dialect) JoinHandler() spi.JoinHandler { return d.join }

// ProjectionHandler returns the projection hook.
func (d *Dialect) ProjectionHandler() spi.ProjectionHandler { return d.projection }
