package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/biyonik/sqlselect"
)

const (
	configName = ".sqlselect"
	envPrefix  = "SQLSELECT"
	dotEnvFile = ".env"
)

// Settings is the resolved configuration of a command run.
type Settings struct {
	Driver   string           `mapstructure:"driver"`
	DSN      string           `mapstructure:"dsn"`
	Database sqlselect.Config `mapstructure:"database"`
}

// ConnectionDriver returns the driver to connect with: the top level driver when
// set, otherwise the database section's.
func (s *Settings) ConnectionDriver() string {
	if s.Driver != "" {
		return s.Driver
	}
	return s.Database.Driver
}

// LoadSettings merges flags, environment, .env and the config file.
func LoadSettings(cmd *cobra.Command, opts *RootOptions) (*Settings, error) {
	if err := loadDotEnv(opts.Fs, dotEnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(opts.Fs)

	defaults := sqlselect.DefaultConfig()
	v.SetDefault("driver", "")
	v.SetDefault("dsn", "")
	v.SetDefault("database.driver", defaults.Driver)
	v.SetDefault("database.host", defaults.Host)
	v.SetDefault("database.port", defaults.Port)
	v.SetDefault("database.database", defaults.Database)
	v.SetDefault("database.username", defaults.Username)
	v.SetDefault("database.password", defaults.Password)
	v.SetDefault("database.charset", defaults.Charset)
	v.SetDefault("database.collation", defaults.Collation)
	v.SetDefault("database.max_open_conns", defaults.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", defaults.MaxIdleConns)
	v.SetDefault("database.conn_max_life", defaults.ConnMaxLife)
	v.SetDefault("database.conn_max_idle", defaults.ConnMaxIdle)
	v.SetDefault("database.tls", defaults.TLS)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "sqlselect"))
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	flags := cmd.Flags()
	for _, name := range []string{"driver", "dsn"} {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(name, f); err != nil {
				return nil, err
			}
		}
	}

	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return nil, err
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// loadDotEnv exports the variables of path that are not already set. A missing
// file is not an error.
func loadDotEnv(fs afero.Fs, path string) error {
	f, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	return applyEnv(f)
}

func applyEnv(r io.Reader) error {
	values, err := godotenv.Parse(r)
	if err != nil {
		return err
	}
	for key, value := range values {
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// NewLogger builds the command logger. Each -v lowers the level by one step, so
// -v shows the executed queries.
func NewLogger(verbose int, w io.Writer) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:  "message",
		LevelKey:    "level",
		EncodeLevel: zapcore.CapitalLevelEncoder,
	})
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(zapcore.Level(-verbose)))
	return zap.New(core)
}
