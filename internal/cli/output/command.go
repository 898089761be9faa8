package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/paramlog"
)

// ParamInfo is the JSON shape of one bound parameter.
type ParamInfo struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

// CommandInfo is the JSON shape of a rendered command.
type CommandInfo struct {
	Title      string      `json:"title"`
	Dialect    string      `json:"dialect"`
	SQL        string      `json:"sql"`
	Parameters []ParamInfo `json:"parameters"`
	Grouping   string      `json:"grouping,omitempty"`
}

// NewCommandInfo converts a rendered command for display.
func NewCommandInfo(title, dialect string, cmd *core.Command) CommandInfo {
	info := CommandInfo{Title: title, Dialect: dialect, SQL: cmd.SQL, Parameters: []ParamInfo{}}
	for _, p := range cmd.Parameters {
		pi := ParamInfo{Name: p.Name, Value: paramlog.FormatValue(p.Value)}
		if p.Type != nil {
			pi.Type = p.Type.StoreType
			if pi.Type == "" {
				pi.Type = p.Type.Kind.String()
			}
		}
		info.Parameters = append(info.Parameters, pi)
	}
	return info
}

// Command writes one rendered command in the effective mode. JSON mode emits
// a single object; callers rendering many commands use Commands.
func (r *Renderer) Command(info CommandInfo) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(info)
	case ModeMarkdown:
		r.Header(info.Title + " (" + info.Dialect + ")")
		r.Printf("```sql\n%s\n```\n\n", info.SQL)
		if len(info.Parameters) > 0 {
			r.Println(paramTable(info.Parameters).RenderMarkdown())
			r.Println()
		}
	default:
		r.Header(info.Title + " " + r.Styles.Muted.Render("("+info.Dialect+")"))
		r.Println(info.SQL)
		if info.Grouping != "" {
			r.Println(r.Styles.Muted.Render("result grouping: " + info.Grouping))
		}
		if len(info.Parameters) > 0 {
			t := paramTable(info.Parameters)
			t.SetStyle(table.StyleLight)
			r.Println(t.Render())
		}
		r.Println()
	}
	return nil
}

// Commands writes several rendered commands; JSON mode emits one array.
func (r *Renderer) Commands(infos []CommandInfo) error {
	if r.EffectiveMode() == ModeJSON {
		return r.JSON(infos)
	}
	for _, info := range infos {
		if err := r.Command(info); err != nil {
			return err
		}
	}
	return nil
}

func paramTable(params []ParamInfo) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Name", "Value", "Type"})
	for _, p := range params {
		t.AppendRow(table.Row{p.Name, p.Value, p.Type})
	}
	return t
}
