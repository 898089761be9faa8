package dialect

import (
	"strings"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/spi"
)

// Builder provides a fluent API for constructing dialects.
// A Builder must not be reused after Build.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name and ANSI defaults.
func NewDialect(name string) *Builder {
	b := &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: core.IdentifierConfig{
				Quote:    `"`,
				QuoteEnd: `"`,
				Escape:   `""`,
			},
			Placeholder: core.PlaceholderQuestion,
			Literals: LiteralConfig{
				True:           "TRUE",
				False:          "FALSE",
				Binary:         BinaryXQuote,
				DateTimeLayout: "2006-01-02 15:04:05.999999",
				DateTimeFormat: "TIMESTAMP '%s'",
			},
			AliasSeparator: " AS ",
			BoolStoreType:  "BOOLEAN",
			Batch: BatchConfig{
				StatementTerminator: ";",
			},
			builtins:  make(map[string]struct{}),
			functions: make(map[string]spi.FunctionHandler),
		},
	}
	return b.BuiltinFunctions(ANSIBuiltinFunctions...)
}

// Derive creates a builder that starts from a copy of base.
// Hooks and functions registered on the builder replace those of base;
// base itself is left untouched.
func Derive(name string, base *Dialect) *Builder {
	d := *base
	d.Name = name
	d.builtins = make(map[string]struct{}, len(base.builtins))
	for k := range base.builtins {
		d.builtins[k] = struct{}{}
	}
	d.functions = make(map[string]spi.FunctionHandler, len(base.functions))
	for k, v := range base.functions {
		d.functions[k] = v
	}
	return &Builder{dialect: &d}
}

// Identifiers configures identifier quoting.
func (b *Builder) Identifiers(quote, quoteEnd, escape string) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:    quote,
		QuoteEnd: quoteEnd,
		Escape:   escape,
	}
	return b
}

// PlaceholderStyle sets how query parameters are formatted.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// Booleans sets the true/false literal tokens.
func (b *Builder) Booleans(trueLit, falseLit string) *Builder {
	b.dialect.Literals.True = trueLit
	b.dialect.Literals.False = falseLit
	return b
}

// StringPrefix sets the prefix written before string literals (e.g. "N").
func (b *Builder) StringPrefix(prefix string) *Builder {
	b.dialect.Literals.StringPrefix = prefix
	return b
}

// BinaryLiterals sets how byte slices are written.
func (b *Builder) BinaryLiterals(style BinaryLiteralStyle) *Builder {
	b.dialect.Literals.Binary = style
	return b
}

// DateTimeLiterals sets the layout and wrapper for time literals.
func (b *Builder) DateTimeLiterals(layout, format string) *Builder {
	b.dialect.Literals.DateTimeLayout = layout
	b.dialect.Literals.DateTimeFormat = format
	return b
}

// AliasSeparator sets the token between an expression and its alias.
func (b *Builder) AliasSeparator(sep string) *Builder {
	b.dialect.AliasSeparator = sep
	return b
}

// ConcatOperator sets the native string concatenation token.
func (b *Builder) ConcatOperator(op string) *Builder {
	b.dialect.ConcatOperator = op
	return b
}

// BoolStoreType sets the cast target for untyped boolean expressions.
func (b *Builder) BoolStoreType(storeType string) *Builder {
	b.dialect.BoolStoreType = storeType
	return b
}

// BuiltinFunctions adds names to the never-delimited allow-list.
func (b *Builder) BuiltinFunctions(names ...string) *Builder {
	for _, n := range names {
		b.dialect.builtins[strings.ToUpper(n)] = struct{}{}
	}
	return b
}

// Function registers a render handler for one function name (case-insensitive).
// The name is also added to the builtin allow-list.
func (b *Builder) Function(name string, h spi.FunctionHandler) *Builder {
	key := strings.ToUpper(name)
	b.dialect.functions[key] = h
	b.dialect.builtins[key] = struct{}{}
	return b
}

// Functions registers the generic function hook, consulted after name-specific handlers.
func (b *Builder) Functions(h spi.FunctionHandler) *Builder {
	b.dialect.function = h
	return b
}

// Top sets the TOP hook.
func (b *Builder) Top(h spi.TopHandler) *Builder {
	b.dialect.top = h
	return b
}

// LimitOffset sets the paging hook.
func (b *Builder) LimitOffset(h spi.LimitOffsetHandler) *Builder {
	b.dialect.limitOffset = h
	return b
}

// Ordering sets the ordering hook.
func (b *Builder) Ordering(h spi.OrderingHandler) *Builder {
	b.dialect.ordering = h
	return b
}

// OrderBy sets the ORDER BY hook.
func (b *Builder) OrderBy(h spi.OrderByHandler) *Builder {
	b.dialect.orderBy = h
	return b
}

// Operator sets the operator-token hook.
func (b *Builder) Operator(h spi.OperatorHandler) *Builder {
	b.dialect.operator = h
	return b
}

// Binary sets the binary-expression hook.
func (b *Builder) Binary(h spi.BinaryHandler) *Builder {
	b.dialect.binary = h
	return b
}

// PseudoFrom sets the hook for selects without a table source.
func (b *Builder) PseudoFrom(h spi.PseudoFromHandler) *Builder {
	b.dialect.pseudoFrom = h
	return b
}

// Join sets the join hook.
func (b *Builder) Join(h spi.JoinHandler) *Builder {
	b.dialect.join = h
	return b
}

// Projection sets the projection hook.
func (b *Builder) Projection(h spi.ProjectionHandler) *Builder {
	b.dialect.projection = h
	return b
}

// Batch sets the write-batching capabilities.
func (b *Builder) Batch(cfg BatchConfig) *Builder {
	b.dialect.Batch = cfg
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
