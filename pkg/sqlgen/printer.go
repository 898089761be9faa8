package sqlgen

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
)

const indentSize = 4

// Printer accumulates SQL text and the ordered parameter list for one command.
// A Printer is single-use and not safe for concurrent use.
type Printer struct {
	dialect     *dialect.Dialect
	output      *bytes.Buffer
	depth       int
	atLineStart bool

	params  []core.ParameterValue
	indexes map[string]int // parameter name -> 1-based position
	nextGen int
}

// NewPrinter creates an empty printer for the dialect.
func NewPrinter(d *dialect.Dialect) *Printer {
	return &Printer{
		dialect:     d,
		output:      &bytes.Buffer{},
		atLineStart: true,
		indexes:     make(map[string]int),
	}
}

// Write appends text, indenting it if it starts a line.
// Embedded newlines are copied verbatim.
func (p *Printer) Write(s string) {
	if s == "" {
		return
	}
	if p.atLineStart {
		p.output.WriteString(strings.Repeat(" ", p.depth*indentSize))
		p.atLineStart = false
	}
	p.output.WriteString(s)
}

// WriteLines appends multi-line text, indenting every line.
func (p *Printer) WriteLines(s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			p.Newline()
		}
		p.Write(strings.TrimSuffix(line, "\r"))
	}
}

// Newline ends the current line.
func (p *Printer) Newline() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

// Indented runs fn one indent level deeper. The level is restored even if fn panics.
func (p *Printer) Indented(fn func()) {
	p.depth++
	defer func() { p.depth-- }()
	fn()
}

// Capture runs fn and returns the text it wrote instead of appending it.
// Parameters registered by fn are kept.
func (p *Printer) Capture(fn func()) string {
	saved, savedStart := p.output, p.atLineStart
	p.output = &bytes.Buffer{}
	p.atLineStart = false
	defer func() { p.output, p.atLineStart = saved, savedStart }()
	fn()
	return p.output.String()
}

// Delimit quotes an identifier.
func (p *Printer) Delimit(name string) string {
	return p.dialect.QuoteIdentifier(name)
}

// DelimitQualified quotes schema.name, omitting an empty schema.
func (p *Printer) DelimitQualified(schema, name string) string {
	return p.dialect.QuoteQualified(schema, name)
}

// Literal formats a constant as SQL text.
func (p *Printer) Literal(value any, t *core.TypeMapping) string {
	return FormatLiteral(p.dialect, value, t)
}

// AddParameter registers a parameter and returns its placeholder.
// Named and numbered placeholders are emitted once per name, in first-encounter
// order; positional "?" placeholders bind every occurrence.
// An empty name is replaced with a generated one.
func (p *Printer) AddParameter(name string, value any, t *core.TypeMapping) string {
	if name == "" {
		name = p.GenerateName()
	}
	if p.dialect.Placeholder != core.PlaceholderQuestion {
		if idx, ok := p.indexes[name]; ok {
			return p.dialect.FormatPlaceholder(name, idx)
		}
	}
	p.params = append(p.params, core.ParameterValue{Name: name, Value: value, Type: t})
	idx := len(p.params)
	if _, ok := p.indexes[name]; !ok {
		p.indexes[name] = idx
	}
	return p.dialect.FormatPlaceholder(name, idx)
}

// GenerateName returns the next unused parameter name (p0, p1, ...).
func (p *Printer) GenerateName() string {
	for {
		name := "p" + strconv.Itoa(p.nextGen)
		p.nextGen++
		if _, taken := p.indexes[name]; !taken {
			return name
		}
	}
}

// SetNameSeed makes generated parameter names start at p<n>.
func (p *Printer) SetNameSeed(n int) {
	p.nextGen = n
}

// NameSeed returns the number the next generated name will use.
func (p *Printer) NameSeed() int {
	return p.nextGen
}

// Parameters returns the registered parameters in binding order.
func (p *Printer) Parameters() []core.ParameterValue {
	out := make([]core.ParameterValue, len(p.params))
	copy(out, p.params)
	return out
}

// Len returns the number of bytes written so far.
func (p *Printer) Len() int {
	return p.output.Len()
}

// String returns the accumulated SQL text.
func (p *Printer) String() string {
	return p.output.String()
}

// Command returns the accumulated text and parameters.
func (p *Printer) Command() *core.Command {
	return &core.Command{SQL: p.String(), Parameters: p.Parameters()}
}
