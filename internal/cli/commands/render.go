package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/relsql/internal/cli/output"
	"github.com/leapstack-labs/relsql/internal/planfile"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Dialect string
	Watch   bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}
	cmd := &cobra.Command{
		Use:   "render <plan.yaml>...",
		Short: "Render SQL for logical plan files",
		Long: `Render the SQL text and bound parameters for one or more plan files.

Plans are rendered concurrently and printed in argument order. A plan may
name its own dialect; otherwise --dialect or the configured dialect is used.

Output adapts to environment:
  - Terminal: SQL followed by a parameter table
  - Piped/Scripted: Markdown with code blocks
  - JSON: an array of rendered commands`,
		Example: `  # Render a plan for the configured dialect
  relsql render plans/people.yaml

  # Render for SQL Server
  relsql render plans/*.yaml --dialect sqlserver

  # Re-render whenever the plan changes
  relsql render plans/people.yaml --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return watchRender(ctx, cmd, args, opts)
			}
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "", "Dialect override for plans that do not name one")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-render when a plan file changes")

	return cmd
}

func runRender(cmd *cobra.Command, paths []string, opts *RenderOptions) error {
	cmdCtx := NewCommandContext(cmd)
	infos, err := renderPlans(cmd.Context(), cmdCtx, newGenerators(cmdCtx.Logger), paths, opts.Dialect)
	if err != nil {
		return err
	}
	return cmdCtx.Renderer.Commands(infos)
}

// renderPlans loads and renders every plan concurrently. Results keep the
// order of paths.
func renderPlans(ctx context.Context, cmdCtx *CommandContext, gens *generators, paths []string, dialectFlag string) ([]output.CommandInfo, error) {
	infos := make([]output.CommandInfo, len(paths))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			plan, err := planfile.LoadPlan(path)
			if err != nil {
				return err
			}
			name := plan.Dialect
			if name == "" {
				name = dialectFlag
			}
			d, err := cmdCtx.Dialect(name)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			rendered, err := gens.Query(d).Generate(plan.Select)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			title := plan.Name
			if title == "" {
				title = filepath.Base(path)
			}
			infos[i] = output.NewCommandInfo(title, d.Name, rendered)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	cmdCtx.Logger.Debug("rendered plans", slog.Int("count", len(paths)))
	return infos, nil
}

// watchRender renders once, then again after each change to one of paths
// until ctx is cancelled.
func watchRender(ctx context.Context, cmd *cobra.Command, paths []string, opts *RenderOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	gens := newGenerators(cmdCtx.Logger)

	render := func() {
		infos, err := renderPlans(ctx, cmdCtx, gens, paths, opts.Dialect)
		if err != nil {
			r.Warn("render failed: %v", err)
			return
		}
		_ = r.Commands(infos)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace files, so watch the directories and filter by name.
	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	render()
	r.Println(r.Styles.Muted.Render("Watching for changes. Press Ctrl+C to stop."))

	var debounce *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(100*time.Millisecond, func() {
				cmdCtx.Logger.Debug("plan changed", slog.String("file", filepath.Base(abs)))
				render()
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.Warn("watcher error: %v", err)
		}
	}
}
