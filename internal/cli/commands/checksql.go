package commands

import (
	"errors"
	"io"
	"strings"

	"github.com/leapstack-labs/relsql/internal/cli/output"
	"github.com/leapstack-labs/relsql/pkg/sqlgen"
	"github.com/spf13/cobra"
)

// NewCheckSQLCommand creates the check-sql command.
func NewCheckSQLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-sql <sql|->",
		Short: "Check whether raw SQL can be composed as a derived table",
		Long: `Check whether raw SQL starts with SELECT once leading whitespace and
comments are skipped, so it can be wrapped as a derived table.

Pass - to read the SQL from standard input.`,
		Example: `  relsql check-sql "SELECT * FROM People"
  echo "-- note
  SELECT 1" | relsql check-sql -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sql := args[0]
			if sql == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				sql = string(data)
			}
			return runCheckSQL(cmd, sql)
		},
	}
}

type checkResult struct {
	Composable bool   `json:"composable"`
	Error      string `json:"error,omitempty"`
}

func runCheckSQL(cmd *cobra.Command, sql string) error {
	r := NewCommandContext(cmd).Renderer
	err := sqlgen.CheckComposable(sql)

	var nonComposable *sqlgen.NonComposableSQLError
	if err != nil && !errors.As(err, &nonComposable) {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		res := checkResult{Composable: err == nil}
		if err != nil {
			res.Error = err.Error()
		}
		if jerr := r.JSON(res); jerr != nil {
			return jerr
		}
	default:
		if err == nil {
			r.Println(r.Styles.Success.Render("composable: ") + firstLine(sql))
		}
	}
	return err
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
