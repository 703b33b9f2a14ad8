package config

import (
	"errors"
	"flag"
	"strings"

	seeddomain "findmy-backend/internal/seed/domain"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Emulator endpoints used when no override is configured.
const (
	DefaultFirestoreEmulatorHost = "localhost:8080"
	DefaultAuthEmulatorHost      = "localhost:9099"
)

// Log output formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

var (
	ErrMissingProjectID = errors.New("project id is required")
	ErrMissingHost      = errors.New("emulator host is required")
)

// Config is the explicit connection and fixture configuration handed to client
// constructors. ProjectID and UseEmulator come from flags, the rest from the
// environment (optionally seeded from a .env file).
type Config struct {
	ProjectID   string
	UseEmulator bool

	FirestoreEmulatorHost string `env:"SEED_FIRESTORE_EMULATOR_HOST" envDefault:"localhost:8080"`
	AuthEmulatorHost      string `env:"SEED_AUTH_EMULATOR_HOST" envDefault:"localhost:9099"`

	// CredentialsFile is an optional service account key. When empty, live runs
	// use application default credentials (GOOGLE_APPLICATION_CREDENTIALS).
	CredentialsFile string `env:"SEED_CREDENTIALS_FILE"`

	SeedEmail    string `env:"SEED_EMAIL" envDefault:"test@example.com"`
	SeedPassword string `env:"SEED_PASSWORD" envDefault:"password123"`
	Verify       bool   `env:"SEED_VERIFY" envDefault:"true"`

	LogLevel  string `env:"SEED_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"SEED_LOG_FORMAT" envDefault:"console"`
}

// Load reads configuration from the process environment
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, &seeddomain.ConfigurationError{Err: err}
	}
	return &cfg, nil
}

// LoadFrom reads configuration from environ instead of the process environment
func LoadFrom(environ map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, &seeddomain.ConfigurationError{Err: err}
	}
	return &cfg, nil
}

// RegisterFlags binds the command line flags to c
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ProjectID, "project-id", c.ProjectID, "Firebase project ID (required)")
	fs.BoolVar(&c.UseEmulator, "emulator", c.UseEmulator, "use local emulators (firestore "+DefaultFirestoreEmulatorHost+", auth "+DefaultAuthEmulatorHost+")")
}

// Validate checks that the configuration is complete
func (c *Config) Validate() error {
	c.ProjectID = strings.TrimSpace(c.ProjectID)
	if c.ProjectID == "" {
		return &seeddomain.ConfigurationError{Field: "project-id", Err: ErrMissingProjectID}
	}

	if c.UseEmulator {
		if strings.TrimSpace(c.FirestoreEmulatorHost) == "" {
			return &seeddomain.ConfigurationError{Field: "SEED_FIRESTORE_EMULATOR_HOST", Err: ErrMissingHost}
		}
		if strings.TrimSpace(c.AuthEmulatorHost) == "" {
			return &seeddomain.ConfigurationError{Field: "SEED_AUTH_EMULATOR_HOST", Err: ErrMissingHost}
		}
	}

	if c.SeedEmail == "" {
		return &seeddomain.ConfigurationError{Field: "SEED_EMAIL", Err: errors.New("email is required")}
	}
	if len(c.SeedPassword) < 6 {
		// Firebase Authentication rejects shorter passwords
		return &seeddomain.ConfigurationError{Field: "SEED_PASSWORD", Err: errors.New("password must be at least 6 characters")}
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &seeddomain.ConfigurationError{Field: "SEED_LOG_LEVEL", Err: err}
	}
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return &seeddomain.ConfigurationError{Field: "SEED_LOG_FORMAT", Err: errors.New("must be console or json")}
	}
	return nil
}
