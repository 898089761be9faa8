package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/relsql/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// commandInput documents the file or text a command consumes.
type commandInput struct {
	Kind   string // short label for the index table
	Lang   string // code fence language of Sample
	Sample string
}

var commandInputs = map[string]commandInput{
	"render": {Kind: "plan files", Lang: "yaml", Sample: `name: adults
dialect: sqlserver
select:
  project:
    - expr: {col: Name, table: p}
  from:
    - {table: People, alias: p}
  where: {op: ">=", left: {col: Age, table: p}, right: {param: age, value: 18}}
  order_by:
    - expr: {col: Name, table: p}
  limit: {lit: 10}`},
	"batch": {Kind: "write file", Lang: "yaml", Sample: writesSample},
	"exec":  {Kind: "write file", Lang: "yaml", Sample: writesSample},
	"check-sql": {Kind: "raw SQL", Lang: "sql", Sample: `-- comments and whitespace before SELECT are skipped
SELECT * FROM People WHERE Team = 'core'`},
}

const writesSample = `dialect: sqlite
commands:
  - table: People
    state: added
    columns:
      - {name: Name, value: Alice, write: true}
      - {name: Id, read: true, type: {store: int, kind: int}}
  - table: People
    state: modified
    columns:
      - {name: Name, value: Alicia, write: true}
      - {name: Id, original: 1, condition: true, key: true}
  - table: People
    state: deleted
    columns:
      - {name: Id, original: 2, condition: true, key: true}`

// generateCLIDocs writes an index page plus one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	cmds := visibleCommands(root)

	pages := map[string][]byte{"index.md": cliIndex(root, cmds)}
	for _, cmd := range cmds {
		pages[cmd.Name()+".md"] = commandPage(cmd)
	}
	for name, body := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), body, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

func visibleCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

func cliIndex(root *cobra.Command, cmds []*cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for relsql")
	w.GeneratedMarker()
	w.Header(1, "CLI Reference")
	w.Paragraph(root.Long)
	w.CodeBlock("bash", "go install github.com/leapstack-labs/relsql/cmd/relsql@latest")

	rows := make([][]string, 0, len(cmds))
	for _, cmd := range cmds {
		input := "-"
		if in, ok := commandInputs[cmd.Name()]; ok {
			input = in.Kind
		}
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short), input})
	}
	w.Header(2, "Commands")
	w.Table([]string{"Command", "Description", "Input"}, rows)

	w.Header(2, "Global Options")
	w.Table(flagHeaders, flagRows(root.PersistentFlags()))

	w.Header(2, "Configuration")
	w.Paragraph("Settings are read from relsql.yaml, then RELSQL_ environment variables " +
		"(a double underscore separates nested keys, as in RELSQL_TARGET__DSN), then flags.")
	w.CodeBlock("yaml", `dialect: postgres
output: auto
log_parameters: false
target:
  type: postgres
  dsn: ${DATABASE_URL}`)
	return w.Bytes()
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()
	w.Header(1, cmd.Name())
	w.Paragraph(cmd.Long)

	w.Header(2, "Usage")
	w.CodeBlock("bash", cmd.UseLine())

	if in, ok := commandInputs[cmd.Name()]; ok {
		w.Header(2, "Input")
		w.CodeBlock(in.Lang, in.Sample)
	}
	if fs := cmd.LocalNonPersistentFlags(); fs.HasAvailableFlags() {
		w.Header(2, "Options")
		w.Table(flagHeaders, flagRows(fs))
	}
	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}
	return w.Bytes()
}

var flagHeaders = []string{"Option", "Type", "Default", "Description"}

func flagRows(fs *pflag.FlagSet) [][]string {
	var rows [][]string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			name += ", " + InlineCode("-"+f.Shorthand)
		}
		def := f.DefValue
		if def != "" && def != "false" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{name, f.Value.Type(), def, cleanDescription(f.Usage)})
	})
	return rows
}

// cleanExample strips the indentation shared by every non-blank line.
func cleanExample(example string) string {
	lines := strings.Split(strings.Trim(example, "\n"), "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
