// Package cli, sqlselect komut satırı aracının cobra komutlarını içerir.
//
// Komutlar YAML sorgu tanımlarını (bkz. internal/querydef) okur; `render` SQL metnini
// ve argümanları yazdırır, `run` ifadeyi yapılandırılmış veritabanında çalıştırır.
//
// Ayarlar şu sırayla birleşir: bayraklar, SQLSELECT_ önekli ortam değişkenleri
// (.env dosyası dahil), .sqlselect.yaml ve varsayılanlar.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/biyonik/sqlselect"
)

// RootOptions holds global flags and the state shared by every command.
type RootOptions struct {
	Verbose    int
	Format     string // "json" | "text"
	ConfigFile string
	Driver     string
	DSN        string

	Fs       afero.Fs
	Settings *Settings
	Logger   *zap.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the sqlselect command. A nil fs uses the OS filesystem.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	opts := &RootOptions{Fs: fs, Logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:     "sqlselect",
		Short:   "Render and run SELECT statements described in YAML",
		Version: sqlselect.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			settings, err := LoadSettings(cmd, opts)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load configuration", err)
			}
			opts.Settings = settings
			opts.Logger = NewLogger(opts.Verbose, cmd.ErrOrStderr())
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.CountVarP(&opts.Verbose, "verbose", "v", "verbose output (repeat for more)")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.ConfigFile, "config", "", "config file (default .sqlselect.yaml)")
	flags.StringVar(&opts.Driver, "driver", "", "database driver (mysql|sqlite3)")
	flags.StringVar(&opts.DSN, "dsn", "", "data source name, overrides the database section")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))

	return cmd
}

// Execute runs cmd and returns the process exit code. Errors the commands did not
// report themselves are printed to the command's error writer.
func Execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	if !IsReported(err) {
		PrintError(cmd.ErrOrStderr(), err)
	}
	return GetExitCode(err)
}
