package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/relsql/internal/cli/output"
	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/dialect"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered SQL dialects",
		Long:  `List every registered dialect with its parameter style and batch capture strategy.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(cmd)
		},
	}
}

// DialectInfo is the JSON shape of a dialect listing entry.
type DialectInfo struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Placeholders string `json:"placeholders"`
	Capture      string `json:"capture"`
	RowCount     string `json:"row_count,omitempty"`
}

var placeholderNames = map[core.PlaceholderStyle]string{
	core.PlaceholderQuestion: "?",
	core.PlaceholderDollar:   "$n",
	core.PlaceholderAt:       "@name",
	core.PlaceholderColon:    ":name",
}

func dialectInfos() []DialectInfo {
	titleCaser := cases.Title(language.English)
	var infos []DialectInfo
	for _, name := range dialect.List() {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		infos = append(infos, DialectInfo{
			Name:         d.Name,
			Title:        titleCaser.String(d.Name),
			Placeholders: placeholderNames[d.Placeholder],
			Capture:      d.Batch.Capture.String(),
			RowCount:     d.Batch.RowCountSQL,
		})
	}
	return infos
}

func runDialects(cmd *cobra.Command) error {
	r := NewCommandContext(cmd).Renderer
	infos := dialectInfos()

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Name", "Dialect", "Parameters", "Capture", "Row count"})
	for _, d := range infos {
		t.AppendRow(table.Row{d.Name, d.Title, d.Placeholders, d.Capture, d.RowCount})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(t.RenderMarkdown())
		return nil
	}
	t.SetStyle(table.StyleLight)
	r.Println(t.Render())
	return nil
}
