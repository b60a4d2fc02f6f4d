package cli

import (
	"context"
	"encoding/json"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/biyonik/sqlselect"
	"github.com/biyonik/sqlselect/internal/querydef"
)

// RunResult is the JSON output of the run command.
type RunResult struct {
	Name string           `json:"name,omitempty"`
	SQL  string           `json:"sql"`
	Rows []map[string]any `json:"rows"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a query file against the configured database",
		Long: `Run builds the statement of a YAML query definition and executes it in a
read-only transaction. In text mode every row is printed as one JSON object
per line; in json mode the rows are wrapped in the standard response.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(rootOpts, args[0], cmd)
		},
	}
}

func runRun(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}

	def, err := querydef.Load(opts.Fs, path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDefinition, err)
	}

	// Chain errors are reported before a connection is attempted.
	if _, err := def.Statement(sqlselect.Select); err != nil {
		return formatter.Fail(ExitFailure, ErrCodeBuild, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := connect(ctx, opts)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConnect, err)
	}
	defer db.Close()

	var (
		q    sqlselect.Query
		rows []map[string]any
	)
	err = db.ReadTx(ctx, func(tx *sqlselect.Transaction) error {
		s, err := def.Statement(tx.Select)
		if err != nil {
			return err
		}
		if q, err = s.Build(); err != nil {
			return err
		}

		opts.Logger.Debug("running query definition", logFields(path, def, q)...)

		res, err := tx.Run(ctx, q)
		if err != nil {
			return err
		}
		rows, err = db.Scanner().ScanMaps(res)
		return err
	})
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeQuery, err)
	}

	if opts.Format == "json" {
		return formatter.Success(RunResult{Name: def.Name, SQL: q.SQL, Rows: rows})
	}

	enc := json.NewEncoder(formatter.Writer)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return formatter.Fail(ExitFailure, ErrCodeQuery, err)
		}
	}
	return nil
}

// connect opens the database named by --dsn, or by the database section when no
// DSN is configured.
func connect(ctx context.Context, opts *RootOptions) (*sqlselect.DB, error) {
	settings := opts.Settings
	if settings == nil {
		settings = &Settings{Database: *sqlselect.DefaultConfig()}
	}

	withLogger := sqlselect.WithZap(opts.Logger)
	if settings.DSN != "" {
		return sqlselect.Connect(ctx, settings.ConnectionDriver(), settings.DSN, withLogger)
	}

	cfg := settings.Database
	if settings.Driver != "" {
		cfg.Driver = settings.Driver
	}
	return sqlselect.Open(ctx, &cfg, withLogger)
}

func logFields(path string, def *querydef.Definition, q sqlselect.Query) []zap.Field {
	return []zap.Field{
		zap.String("file", path),
		zap.String("name", def.Name),
		zap.String("query", q.SQL),
		zap.Int("args", len(q.Args)),
	}
}
