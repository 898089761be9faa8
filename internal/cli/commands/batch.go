package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/relsql/internal/cli/output"
	"github.com/leapstack-labs/relsql/internal/planfile"
	"github.com/leapstack-labs/relsql/pkg/core"
	"github.com/leapstack-labs/relsql/pkg/update"
	"github.com/spf13/cobra"
)

// BatchOptions holds options for the batch command.
type BatchOptions struct {
	Dialect    string
	Statements bool
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	opts := &BatchOptions{}
	cmd := &cobra.Command{
		Use:   "batch <writes.yaml>",
		Short: "Render a write batch for row-level insert, update and delete commands",
		Long: `Render the combined SQL batch for a file of modification commands.

Consecutive inserts into the same table are folded into multi-row statements.
The output shows how each result set maps back to the input commands.`,
		Example: `  # Render a batch for SQL Server
  relsql batch writes.yaml --dialect sqlserver

  # Show each statement with its own parameters
  relsql batch writes.yaml --statements`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "", "Dialect override when the file does not name one")
	cmd.Flags().BoolVar(&opts.Statements, "statements", false, "Render each statement separately")

	return cmd
}

func runBatch(cmd *cobra.Command, path string, opts *BatchOptions) error {
	cmdCtx := NewCommandContext(cmd)

	batch, err := loadBatch(cmdCtx, path, opts.Dialect)
	if err != nil {
		return err
	}
	return cmdCtx.Renderer.Commands(batchInfos(batch, filepath.Base(path), opts.Statements))
}

// loadBatch decodes a writes file and renders it for the resolved dialect.
func loadBatch(cmdCtx *CommandContext, path, dialectFlag string) (*update.Batch, error) {
	writes, err := planfile.LoadWrites(path)
	if err != nil {
		return nil, err
	}
	name := writes.Dialect
	if name == "" {
		name = dialectFlag
	}
	d, err := cmdCtx.Dialect(name)
	if err != nil {
		return nil, err
	}
	batch, err := newGenerators(cmdCtx.Logger).Write(d).RenderCommands(writes.Commands)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return batch, nil
}

func batchInfos(batch *update.Batch, title string, perStatement bool) []output.CommandInfo {
	dialectName := batch.Dialect().Name
	if !perStatement {
		info := output.NewCommandInfo(title, dialectName, batch.Command())
		info.Grouping = describeResultSets(batch.ResultSets())
		return []output.CommandInfo{info}
	}

	stmts := batch.Statements()
	infos := make([]output.CommandInfo, 0, len(stmts))
	for i, stmt := range stmts {
		info := output.NewCommandInfo(
			fmt.Sprintf("%s #%d %s %s", title, i, stmt.State, stmt.Table),
			dialectName,
			&core.Command{SQL: stmt.SQL, Parameters: stmt.Parameters})
		info.Grouping = fmt.Sprintf("%s for commands %v", stmt.Result, stmt.Commands)
		infos = append(infos, info)
	}
	return infos
}

// describeResultSets summarizes result set mappings, e.g.
// "capture [0 1] (Id); row-count [2]".
func describeResultSets(sets []update.ResultSetMapping) string {
	if len(sets) == 0 {
		return "none"
	}
	parts := make([]string, len(sets))
	for i, m := range sets {
		parts[i] = fmt.Sprintf("%s %v", m.Kind, m.Commands)
		if len(m.Columns) > 0 {
			parts[i] += " (" + strings.Join(m.Columns, ", ") + ")"
		}
	}
	return strings.Join(parts, "; ")
}
