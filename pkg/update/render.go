package update

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
	"github.com/leapstack-labs/relsql/pkg/sqlgen"
)

// renderInsert writes, in order: capture declaration, header, capture clause,
// values, terminator. Some dialects only accept the capture clause between
// the column list and VALUES.
func (b *Batch) renderInsert(p *sqlgen.Printer, table, schema string, rows []*core.ModificationCommand, capture string) error {
	first := rows[0]
	writes := first.WriteColumns()
	reads := first.ReadColumns()

	if err := b.declareCapture(p, reads, capture, false); err != nil {
		return err
	}

	p.Write("INSERT INTO " + p.DelimitQualified(schema, table))
	if len(writes) > 0 {
		p.Write(" (" + b.columnList(writes) + ")")
	}
	b.outputClause(p, "INSERTED", reads, capture)
	p.Newline()

	if len(writes) == 0 {
		p.Write("DEFAULT VALUES")
	} else {
		p.Write("VALUES ")
		for i, row := range rows {
			if i > 0 {
				p.Write(",")
				p.Newline()
			}
			p.Write("(")
			for j, c := range row.WriteColumns() {
				if j > 0 {
					p.Write(", ")
				}
				p.Write(p.AddParameter(c.ParameterName, c.Value, c.Type))
			}
			p.Write(")")
		}
	}
	b.returningClause(p, reads)
	p.Write(b.dialect.Batch.StatementTerminator)
	return nil
}

// renderMergeInsert writes a multi-row insert as MERGE over a VALUES source
// that numbers its rows, and captures each row's position next to the read
// columns:
//
//	MERGE [t] USING (
//	VALUES (@p0, 0),
//	(@p1, 1)) AS i ([Name], _Position) ON 1=0
//	WHEN NOT MATCHED THEN
//	INSERT ([Name])
//	VALUES (i.[Name])
//	OUTPUT INSERTED.[Id], i._Position
//	INTO @inserted0;
func (b *Batch) renderMergeInsert(p *sqlgen.Printer, table, schema string, rows []*core.ModificationCommand, capture string) error {
	first := rows[0]
	writes := first.WriteColumns()
	reads := first.ReadColumns()

	if err := b.declareCapture(p, reads, capture, true); err != nil {
		return err
	}

	p.Write("MERGE " + p.DelimitQualified(schema, table) + " USING (")
	p.Newline()
	p.Write("VALUES ")
	for i, row := range rows {
		if i > 0 {
			p.Write(",")
			p.Newline()
		}
		p.Write("(")
		for _, c := range row.WriteColumns() {
			p.Write(p.AddParameter(c.ParameterName, c.Value, c.Type) + ", ")
		}
		p.Write(strconv.Itoa(i) + ")")
	}
	p.Write(") AS i (" + b.columnList(writes) + ", " + positionColumn + ") ON 1=0")
	p.Newline()
	p.Write("WHEN NOT MATCHED THEN")
	p.Newline()
	p.Write("INSERT (" + b.columnList(writes) + ")")
	p.Newline()
	source := make([]string, len(writes))
	for i, c := range writes {
		source[i] = "i." + p.Delimit(c.ColumnName)
	}
	p.Write("VALUES (" + strings.Join(source, ", ") + ")")

	out := make([]string, 0, len(reads)+1)
	for _, c := range reads {
		out = append(out, "INSERTED."+p.Delimit(c.ColumnName))
	}
	out = append(out, "i."+positionColumn)
	p.Newline()
	p.Write("OUTPUT " + strings.Join(out, ", "))
	p.Newline()
	p.Write("INTO " + capture)
	p.Write(b.dialect.Batch.StatementTerminator)
	return nil
}

// renderUpdate writes UPDATE t SET ..., the capture clause, then WHERE.
func (b *Batch) renderUpdate(p *sqlgen.Printer, cmd *core.ModificationCommand, capture string) error {
	reads := cmd.ReadColumns()
	if err := b.declareCapture(p, reads, capture, false); err != nil {
		return err
	}

	p.Write("UPDATE " + p.DelimitQualified(cmd.Schema, cmd.Table) + " SET ")
	for i, c := range cmd.WriteColumns() {
		if i > 0 {
			p.Write(", ")
		}
		p.Write(p.Delimit(c.ColumnName) + " = " + p.AddParameter(c.ParameterName, c.Value, c.Type))
	}
	b.outputClause(p, "INSERTED", reads, capture)
	b.whereClause(p, cmd)
	b.returningClause(p, reads)
	p.Write(b.dialect.Batch.StatementTerminator)
	return nil
}

func (b *Batch) renderDelete(p *sqlgen.Printer, cmd *core.ModificationCommand) {
	p.Write("DELETE FROM " + p.DelimitQualified(cmd.Schema, cmd.Table))
	b.whereClause(p, cmd)
	p.Write(b.dialect.Batch.StatementTerminator)
}

// whereClause binds the condition values (original values for concurrency
// tokens). A nil condition value compares with IS NULL.
func (b *Batch) whereClause(p *sqlgen.Printer, cmd *core.ModificationCommand) {
	conds := cmd.ConditionColumns()
	if len(conds) == 0 {
		return
	}
	p.Newline()
	p.Write("WHERE ")
	for i := range conds {
		c := &conds[i]
		if i > 0 {
			p.Write(" AND ")
		}
		value := c.ConditionValue()
		if value == nil {
			p.Write(p.Delimit(c.ColumnName) + " IS NULL")
			continue
		}
		p.Write(p.Delimit(c.ColumnName) + " = " + p.AddParameter("", value, c.Type))
	}
}

// declareCapture declares the table variable that OUTPUT ... INTO fills. A
// positioned capture adds an int column for the source row index.
func (b *Batch) declareCapture(p *sqlgen.Printer, reads []core.ColumnModification, capture string, positioned bool) error {
	if capture == "" {
		return nil
	}
	defs := make([]string, len(reads))
	for i, c := range reads {
		storeType := b.dialect.Batch.CaptureTypeFor(c.Type)
		if storeType == "" {
			return fmt.Errorf("%w: %s", ErrMissingCaptureType, c.ColumnName)
		}
		defs[i] = p.Delimit(c.ColumnName) + " " + storeType
	}
	if positioned {
		defs = append(defs, p.Delimit(positionColumn)+" int")
	}
	p.Write("DECLARE " + capture + " TABLE (" + strings.Join(defs, ", ") + ")" + b.dialect.Batch.StatementTerminator)
	p.Newline()
	return nil
}

// outputClause writes OUTPUT <prefix>.col, ... INTO capture for table-variable dialects.
func (b *Batch) outputClause(p *sqlgen.Printer, prefix string, reads []core.ColumnModification, capture string) {
	if capture == "" || len(reads) == 0 {
		return
	}
	cols := make([]string, len(reads))
	for i, c := range reads {
		cols[i] = prefix + "." + p.Delimit(c.ColumnName)
	}
	p.Newline()
	p.Write("OUTPUT " + strings.Join(cols, ", "))
	p.Newline()
	p.Write("INTO " + capture)
}

func (b *Batch) returningClause(p *sqlgen.Printer, reads []core.ColumnModification) {
	if len(reads) == 0 || b.dialect.Batch.Capture != dialect.CaptureReturning {
		return
	}
	p.Newline()
	p.Write("RETURNING " + b.columnList(reads))
}

func (b *Batch) columnList(cols []core.ColumnModification) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = b.dialect.QuoteIdentifier(c.ColumnName)
	}
	return strings.Join(names, ", ")
}
