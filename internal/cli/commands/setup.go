// Package commands implements the relsql CLI subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/relsql/internal/cli/config"
	"github.com/leapstack-labs/relsql/internal/cli/output"
	"github.com/leapstack-labs/relsql/pkg/dialect"
	"github.com/leapstack-labs/relsql/pkg/sqlgen"
	"github.com/leapstack-labs/relsql/pkg/update"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds the context from the config and logger stored on
// the command by the root's PersistentPreRunE.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// Dialect resolves name, falling back to the configured dialect.
func (c *CommandContext) Dialect(name string) (*dialect.Dialect, error) {
	if name == "" {
		name = c.Cfg.Dialect
	}
	d, err := dialect.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("resolve dialect: %w", err)
	}
	return d, nil
}

// generators shares one immutable generator per dialect across goroutines.
type generators struct {
	mu     sync.Mutex
	logger *slog.Logger
	query  map[string]*sqlgen.Generator
	write  map[string]*update.Generator
}

func newGenerators(logger *slog.Logger) *generators {
	return &generators{
		logger: logger,
		query:  make(map[string]*sqlgen.Generator),
		write:  make(map[string]*update.Generator),
	}
}

func (g *generators) Query(d *dialect.Dialect) *sqlgen.Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	gen, ok := g.query[d.Name]
	if !ok {
		gen = sqlgen.New(d, sqlgen.WithLogger(g.logger))
		g.query[d.Name] = gen
	}
	return gen
}

func (g *generators) Write(d *dialect.Dialect) *update.Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	gen, ok := g.write[d.Name]
	if !ok {
		gen = update.New(d, update.WithLogger(g.logger))
		g.write[d.Name] = gen
	}
	return gen
}
