package update

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
	"github.com/leapstack-labs/relsql/pkg/sqlgen"
)

// ResultKind tells the caller what a statement returns.
type ResultKind int

const (
	// ResultCapture returns one row of read columns per covered command.
	ResultCapture ResultKind = iota
	// ResultRowCount returns a single row holding the affected-row count.
	ResultRowCount
	// ResultAffected returns no rows; the driver reports the affected-row count.
	ResultAffected
)

// String returns the result kind name.
func (k ResultKind) String() string {
	switch k {
	case ResultCapture:
		return "capture"
	case ResultRowCount:
		return "row-count"
	default:
		return "affected"
	}
}

// Statement is one rendered write.
type Statement struct {
	// SQL is the statement with any capture declaration, without the trailing
	// result query. It can be executed on its own with Parameters.
	SQL        string
	Parameters []core.ParameterValue

	// Trailing is the capture SELECT or row-count query that follows SQL in the
	// combined batch text. Empty when the statement returns rows itself.
	Trailing string

	Table       string
	State       core.EntityState
	Commands    []int // positions of the covered commands in append order
	Result      ResultKind
	ReadColumns []string
}

// ResultSetMapping correlates one result of the combined batch with the
// commands it confirms.
type ResultSetMapping struct {
	Commands []int
	Kind     ResultKind
	Columns  []string
}

// Batch accumulates writes. The combined text uses one parameter namespace,
// so names (p0, p1, ...) are unique across the batch.
type Batch struct {
	gen        *Generator
	dialect    *dialect.Dialect
	printer    *sqlgen.Printer
	statements []Statement
	commands   int
	captures   int
}

func newBatch(g *Generator) *Batch {
	return &Batch{
		gen:     g,
		dialect: g.dialect,
		printer: sqlgen.NewPrinter(g.dialect),
	}
}

// AppendBulkInsert appends inserts of rows into one table.
//
// Rows without write columns each become their own DEFAULT VALUES statement.
// Rows with write columns are folded into one statement per distinct write
// and read shape, with one VALUES tuple per row. The grouping is
// GroupingSingleResultSet when a single statement covers every row and
// GroupingPerCommand otherwise.
func (b *Batch) AppendBulkInsert(table, schema string, rows []*core.ModificationCommand) (core.ResultGrouping, error) {
	if len(rows) == 0 {
		return core.GroupingSingleResultSet, ErrNoRows
	}
	base := b.commands
	b.commands += len(rows)

	type group struct {
		indexes []int
		rows    []*core.ModificationCommand
	}
	var groups []*group
	shapes := make(map[string]*group)
	for i, row := range rows {
		if !row.HasWrites() {
			groups = append(groups, &group{indexes: []int{base + i}, rows: []*core.ModificationCommand{row}})
			continue
		}
		key := shapeKey(row)
		g, ok := shapes[key]
		if !ok {
			g = &group{}
			shapes[key] = g
			groups = append(groups, g)
		}
		g.indexes = append(g.indexes, base+i)
		g.rows = append(g.rows, row)
	}

	for _, g := range groups {
		if err := b.appendInsert(table, schema, g.rows, g.indexes); err != nil {
			return core.GroupingSingleResultSet, err
		}
	}

	grouping := core.GroupingSingleResultSet
	if len(groups) > 1 {
		grouping = core.GroupingPerCommand
	}
	b.gen.logger.Debug("appended bulk insert",
		slog.String("table", table),
		slog.Int("rows", len(rows)),
		slog.Int("statements", len(groups)),
		slog.String("grouping", grouping.String()))
	return grouping, nil
}

// AppendInsert appends a single-row insert.
func (b *Batch) AppendInsert(cmd *core.ModificationCommand) error {
	_, err := b.AppendBulkInsert(cmd.Table, cmd.Schema, []*core.ModificationCommand{cmd})
	return err
}

// AppendUpdate appends an update. A command without condition columns
// renders without WHERE; callers must guard against that.
func (b *Batch) AppendUpdate(cmd *core.ModificationCommand) error {
	if !cmd.HasWrites() {
		return fmt.Errorf("%w: %s", ErrNoWriteColumns, cmd.Table)
	}
	if len(cmd.ConditionColumns()) == 0 {
		b.gen.logger.Warn("update without condition columns", slog.String("table", cmd.Table))
	}
	idx := b.commands
	b.commands++
	return b.appendStatement(cmd.Table, core.StateModified, []int{idx}, cmd.ReadColumns(), false,
		func(p *sqlgen.Printer, capture string) error {
			return b.renderUpdate(p, cmd, capture)
		})
}

// AppendDelete appends a delete. Deletes never read values back. A command
// without condition columns renders without WHERE; callers must guard
// against that.
func (b *Batch) AppendDelete(cmd *core.ModificationCommand) error {
	if len(cmd.ConditionColumns()) == 0 {
		b.gen.logger.Warn("delete without condition columns", slog.String("table", cmd.Table))
	}
	idx := b.commands
	b.commands++
	return b.appendStatement(cmd.Table, core.StateDeleted, []int{idx}, nil, false,
		func(p *sqlgen.Printer, _ string) error {
			b.renderDelete(p, cmd)
			return nil
		})
}

// AppendCommands appends an ordered list of writes. Runs of consecutive
// inserts into the same table are rendered as bulk inserts; everything else
// keeps its own statement.
func (b *Batch) AppendCommands(cmds []*core.ModificationCommand) error {
	for i := 0; i < len(cmds); {
		cmd := cmds[i]
		switch cmd.State {
		case core.StateAdded:
			j := i + 1
			for j < len(cmds) && cmds[j].State == core.StateAdded &&
				cmds[j].Table == cmd.Table && cmds[j].Schema == cmd.Schema {
				j++
			}
			if _, err := b.AppendBulkInsert(cmd.Table, cmd.Schema, cmds[i:j]); err != nil {
				return err
			}
			i = j
			continue
		case core.StateModified:
			if err := b.AppendUpdate(cmd); err != nil {
				return err
			}
		case core.StateDeleted:
			if err := b.AppendDelete(cmd); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown entity state %d for table %s", cmd.State, cmd.Table)
		}
		i++
	}
	return nil
}

// Command returns the combined batch text and its parameters.
func (b *Batch) Command() *core.Command {
	return b.printer.Command()
}

// Statements returns the rendered statements in append order.
func (b *Batch) Statements() []Statement {
	out := make([]Statement, len(b.statements))
	copy(out, b.statements)
	return out
}

// ResultSets returns, in order, the results the combined batch produces.
// Statements whose affected-row count comes from the driver are omitted.
func (b *Batch) ResultSets() []ResultSetMapping {
	var out []ResultSetMapping
	for _, s := range b.statements {
		if s.Result == ResultAffected {
			continue
		}
		out = append(out, ResultSetMapping{Commands: s.Commands, Kind: s.Result, Columns: s.ReadColumns})
	}
	return out
}

// Len returns the number of commands appended.
func (b *Batch) Len() int {
	return b.commands
}

// Dialect returns the batch's dialect.
func (b *Batch) Dialect() *dialect.Dialect {
	return b.dialect
}

// positionColumn carries each source row's index through a MERGE so captured
// values can be returned in row order.
const positionColumn = "_Position"

func (b *Batch) appendInsert(table, schema string, rows []*core.ModificationCommand, indexes []int) error {
	reads := rows[0].ReadColumns()
	// A table variable filled by OUTPUT has no defined order, so multi-row
	// captures go through MERGE with a position column and are read back
	// ordered by it.
	ordered := len(rows) > 1 && len(reads) > 0 && rows[0].HasWrites() &&
		b.dialect.Batch.Capture == dialect.CaptureTableVariable
	return b.appendStatement(table, core.StateAdded, indexes, reads, ordered,
		func(p *sqlgen.Printer, capture string) error {
			if ordered {
				return b.renderMergeInsert(p, table, schema, rows, capture)
			}
			return b.renderInsert(p, table, schema, rows, capture)
		})
}

// appendStatement renders a statement twice: into the combined batch text and
// standalone, with the same parameter names. The standalone copy numbers its
// own placeholders, so it can be executed on drivers without multi-statement
// support.
func (b *Batch) appendStatement(table string, state core.EntityState, indexes []int,
	reads []core.ColumnModification, ordered bool, render func(p *sqlgen.Printer, capture string) error) error {
	capture := ""
	if len(reads) > 0 && b.dialect.Batch.Capture == dialect.CaptureTableVariable {
		capture = "@inserted" + strconv.Itoa(b.captures)
	}

	seed := b.printer.NameSeed()
	standalone := sqlgen.NewPrinter(b.dialect)
	standalone.SetNameSeed(seed)
	if err := render(standalone, capture); err != nil {
		return err
	}

	if len(b.statements) > 0 {
		b.printer.Newline()
	}
	if err := render(b.printer, capture); err != nil {
		return err
	}
	trailing, kind := b.trailer(reads, capture, ordered)
	if trailing != "" {
		b.printer.Newline()
		b.printer.Write(trailing)
	}
	if capture != "" {
		b.captures++
	}

	b.statements = append(b.statements, Statement{
		SQL:         standalone.String(),
		Parameters:  standalone.Parameters(),
		Trailing:    trailing,
		Table:       table,
		State:       state,
		Commands:    indexes,
		Result:      kind,
		ReadColumns: columnNames(reads),
	})
	return nil
}

// trailer returns the query that confirms a write, and what it returns.
// Ordered captures are sorted by the position column.
func (b *Batch) trailer(reads []core.ColumnModification, capture string, ordered bool) (string, ResultKind) {
	cfg := b.dialect.Batch
	switch {
	case len(reads) > 0 && capture != "":
		query := "SELECT " + b.columnList(reads) + " FROM " + capture
		if ordered {
			query += " ORDER BY " + b.dialect.QuoteIdentifier(positionColumn)
		}
		return query + cfg.StatementTerminator, ResultCapture
	case len(reads) > 0:
		return "", ResultCapture
	case cfg.RowCountSQL != "":
		return cfg.RowCountSQL + cfg.StatementTerminator, ResultRowCount
	default:
		return "", ResultAffected
	}
}

// shapeKey identifies rows that can share one multi-row VALUES list.
func shapeKey(row *core.ModificationCommand) string {
	var sb strings.Builder
	for _, c := range row.Columns {
		if c.IsWrite {
			sb.WriteString("w:")
		} else if c.IsRead {
			sb.WriteString("r:")
		} else {
			continue
		}
		sb.WriteString(c.ColumnName)
		sb.WriteByte(0)
	}
	return sb.String()
}

func columnNames(cols []core.ColumnModification) []string {
	if len(cols) == 0 {
		return nil
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.ColumnName
	}
	return names
}
