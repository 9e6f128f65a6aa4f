package cliparse

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/danielhkuo/click-experiment/db"
)

const (
	DefaultPort      = 3318
	DefaultFileDB    = "click-db.json"
	DefaultSQLiteDB  = "click-db.sqlite"
	DefaultServerURL = "http://localhost:3318"
	DefaultPrefsPath = "click-prefs.yaml"
)

type Config struct {
	Bind           string
	Port           int
	DatabaseType   string
	DatabaseURL    string
	AllowedOrigins []string
	Profile        bool
	Verbose        bool
}

// PlayConfig holds the flags of the headless client.
type PlayConfig struct {
	ServerURL string
	PrefsPath string
	Team      string
	Clicks    int
	Timeout   time.Duration
}

// BindFlags registers the server flags on fs.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", DefaultPort, "port to listen on (env: PORT)")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", db.TypeFile, "store backend: file, sqlite or postgres (env: DATABASE_TYPE)")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "store path or connection string (env: DATABASE_URL)")
	fs.StringSliceVar(&cfg.AllowedOrigins, "allowed-origins", []string{"*"}, "CORS origins allowed to call the API (env: ALLOWED_ORIGINS)")
	fs.BoolVar(&cfg.Profile, "profile", false, "register net/http/pprof handlers under /debug (env: PROFILE)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log at debug level (env: VERBOSE)")
}

// BindPlayFlags registers the client flags on fs.
func BindPlayFlags(fs *pflag.FlagSet, cfg *PlayConfig) {
	fs.StringVar(&cfg.ServerURL, "server", DefaultServerURL, "leaderboard server base URL (env: SERVER)")
	fs.StringVar(&cfg.PrefsPath, "prefs", DefaultPrefsPath, "client preferences file (env: PREFS)")
	fs.StringVar(&cfg.Team, "team", "", "team to join if none is stored: inside or outside (env: TEAM)")
	fs.IntVar(&cfg.Clicks, "clicks", 100, "clicks to register during the session (env: CLICKS)")
	fs.DurationVar(&cfg.Timeout, "timeout", 5*time.Second, "request timeout (env: TIMEOUT)")
}

// NewViper returns a viper instance reading env vars named after flags,
// upper-cased with dashes replaced by underscores.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ApplyEnv fills every flag not set on the command line from its env var.
func ApplyEnv(fs *pflag.FlagSet, v *viper.Viper) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			if err := fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
				errs = append(errs, fmt.Errorf("invalid %s env variable: %w", envName(f.Name), err))
			}
		}
	})
	return errors.Join(errs...)
}

func envName(flag string) string {
	return strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// Validate checks c and fills in the backend's default database path.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}

	switch c.DatabaseType {
	case db.TypeFile:
		if c.DatabaseURL == "" {
			c.DatabaseURL = DefaultFileDB
		}
	case db.TypeSQLite:
		if c.DatabaseURL == "" {
			c.DatabaseURL = DefaultSQLiteDB
		}
	case db.TypePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return fmt.Errorf("%w: %q", db.ErrUnknownType, c.DatabaseType)
	}

	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// ParseFlags parses server flags with env fallback and validates the result
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet("click-experiment", pflag.ContinueOnError)
	BindFlags(fs, &cfg)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(fs, NewViper()); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadDotEnv loads path into the environment without overriding
// variables already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
