package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/relsql/internal/cli/output"
	"github.com/leapstack-labs/relsql/internal/planfile"
	"github.com/leapstack-labs/relsql/pkg/adapter"
	"github.com/leapstack-labs/relsql/pkg/paramlog"
	"github.com/spf13/cobra"

	// Register executors for the target types relsql.yaml may name.
	_ "github.com/leapstack-labs/relsql/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/relsql/pkg/adapters/sqlite"
)

// ErrNoTarget is returned by exec when relsql.yaml has no target.
var ErrNoTarget = errors.New("no target configured")

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <writes.yaml>",
		Short: "Execute a write batch against the configured target",
		Long: `Render a write batch for the target's dialect and execute it.

The target is read from the target section of relsql.yaml (type, dsn or
database). Captured values and affected row counts are reported per command.`,
		Example: `  # Apply writes to the configured target
  relsql exec writes.yaml

  # Apply writes to a local SQLite file
  RELSQL_TARGET__TYPE=sqlite RELSQL_TARGET__DATABASE=app.db relsql exec writes.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, args[0])
		},
	}
}

// ExecRow is the JSON shape of one executed command.
type ExecRow struct {
	Command      int               `json:"command"`
	Table        string            `json:"table"`
	State        string            `json:"state"`
	RowsAffected int64             `json:"rows_affected"`
	Values       map[string]string `json:"values,omitempty"`
}

func runExec(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()

	cfg, ok := cmdCtx.Cfg.AdapterConfig()
	if !ok {
		return fmt.Errorf("%w\nHint: add a target section with type and dsn to relsql.yaml", ErrNoTarget)
	}

	db, err := adapter.Open(ctx, cfg, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	db.SetLogParameterValues(cmdCtx.Cfg.LogParameters)

	writes, err := planfile.LoadWrites(path)
	if err != nil {
		return err
	}
	batch, err := newGenerators(cmdCtx.Logger).Write(db.Dialect()).RenderCommands(writes.Commands)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	result, err := db.ExecBatch(ctx, batch)
	if err != nil {
		return err
	}
	cmdCtx.Logger.Info("batch executed",
		slog.String("target", cfg.Type),
		slog.Int("commands", len(result.Commands)),
		slog.Int64("rows_affected", result.RowsAffected()))

	rows := make([]ExecRow, len(result.Commands))
	for i, res := range result.Commands {
		c := writes.Commands[i]
		rows[i] = ExecRow{Command: i, Table: c.Table, State: c.State.String(), RowsAffected: res.RowsAffected}
		if len(res.Values) > 0 {
			rows[i].Values = make(map[string]string, len(res.Values))
			for k, v := range res.Values {
				rows[i].Values[k] = paramlog.FormatValue(v)
			}
		}
	}
	return renderExecRows(cmdCtx.Renderer, rows, result.Confirmed())
}

func renderExecRows(r *output.Renderer, rows []ExecRow, confirmed bool) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rows)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Table", "State", "Rows", "Values"})
	for _, row := range rows {
		t.AppendRow(table.Row{row.Command, row.Table, row.State, row.RowsAffected, formatValues(row.Values)})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(t.RenderMarkdown())
	} else {
		t.SetStyle(table.StyleLight)
		r.Println(t.Render())
	}

	if !confirmed {
		r.Warn("some commands affected no rows")
	}
	return nil
}

func formatValues(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + values[k]
	}
	return strings.Join(parts, ", ")
}
