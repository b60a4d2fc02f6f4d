package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/biyonik/sqlselect"
	"github.com/biyonik/sqlselect/cond"
	"github.com/biyonik/sqlselect/internal/querydef"
)

// RenderResult is the output of the render command.
type RenderResult struct {
	Name string `json:"name,omitempty"`
	SQL  string `json:"sql"`
	Args []any  `json:"args"`
}

// String renders the text form: an optional name comment, the SQL and the args.
func (r RenderResult) String() string {
	var b strings.Builder
	if r.Name != "" {
		b.WriteString("-- " + r.Name + "\n")
	}
	b.WriteString(r.SQL)
	b.WriteString("\n-- args: ")

	args, err := json.Marshal(r.Args)
	if err != nil {
		args = []byte("?")
	}
	b.Write(args)
	return b.String()
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render <file>",
		Short: "Print the SQL and bound arguments of a query file",
		Long: `Render reads a YAML query definition, builds the SELECT statement and prints
its text together with the bound arguments. Nothing is sent to a database.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(rootOpts, args[0], cmd)
		},
	}
}

func runRender(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}

	def, err := querydef.Load(opts.Fs, path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDefinition, err)
	}

	s, err := def.Statement(sqlselect.Select)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeBuild, err)
	}

	q, err := s.Build()
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeBuild, err)
	}
	if n := cond.Placeholders(q.SQL); n != len(q.Args) {
		return formatter.Fail(ExitFailure, ErrCodeBuild,
			fmt.Errorf("statement has %d placeholders but %d arguments", n, len(q.Args)))
	}

	opts.Logger.Debug("rendered query definition", logFields(path, def, q)...)

	result := RenderResult{Name: def.Name, SQL: q.SQL, Args: q.Args}
	if result.Args == nil {
		result.Args = []any{}
	}
	return formatter.Success(result)
}
