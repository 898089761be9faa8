package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/relsql/pkg/dialect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	_ "github.com/leapstack-labs/relsql/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/relsql/pkg/dialects/oracle"
	_ "github.com/leapstack-labs/relsql/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/relsql/pkg/dialects/sqlite"
	_ "github.com/leapstack-labs/relsql/pkg/dialects/sqlserver"
)

// generateDialectDocs writes one overview page listing every registered dialect.
func generateDialectDocs(outDir string) error {
	log.Printf("Generating dialect docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	titleCaser := cases.Title(language.English)
	w := NewMarkdownWriter()
	w.Frontmatter("Dialects", "SQL dialects supported by relsql")
	w.GeneratedMarker()
	w.Header(1, "Dialects")
	w.Paragraph("Each dialect controls identifier quoting, parameter placeholders, paging syntax and how write batches capture generated values.")

	var rows [][]string
	for _, name := range dialect.List() {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		rowCount := d.Batch.RowCountSQL
		if rowCount != "" {
			rowCount = InlineCode(rowCount)
		}
		rows = append(rows, []string{
			InlineCode(d.Name),
			titleCaser.String(d.Name),
			InlineCode(d.QuoteIdentifier("Name")),
			InlineCode(d.FormatPlaceholder("p0", 1)),
			d.Batch.Capture.String(),
			rowCount,
		})
	}
	w.Table([]string{"Name", "Dialect", "Identifier", "Parameter", "Capture", "Row count"}, rows)

	filename := filepath.Join(outDir, "index.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
