// Package config reads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	HTTPAddr    string   `env:"LAMPDRAGON_HTTP_ADDR" envDefault:":8080"`
	CORSOrigins []string `env:"LAMPDRAGON_CORS_ORIGINS" envSeparator:","`

	Storage         string `env:"LAMPDRAGON_STORAGE" envDefault:"memory"`
	DBDSN           string `env:"LAMPDRAGON_DB_DSN"`
	DBMaxOpenConns  int    `env:"LAMPDRAGON_DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns  int    `env:"LAMPDRAGON_DB_MAX_IDLE_CONNS" envDefault:"5"`
	MigrationsDir   string `env:"LAMPDRAGON_MIGRATIONS_DIR" envDefault:"db/migrations"`
	AutoMigrate     bool   `env:"LAMPDRAGON_AUTO_MIGRATE" envDefault:"true"`
	SQLitePath      string `env:"LAMPDRAGON_SQLITE_PATH" envDefault:"lampdragon.db"`
	CatalogRoot     string `env:"LAMPDRAGON_CATALOG_ROOT"`
	CatalogFile     string `env:"LAMPDRAGON_CATALOG_FILE" envDefault:"catalog.json"`
	DefaultName     string `env:"LAMPDRAGON_DEFAULT_NAME" envDefault:"Lampy"`
	StartingGold    int    `env:"LAMPDRAGON_STARTING_GOLD" envDefault:"50"`
	RandSeed        uint64 `env:"LAMPDRAGON_RAND_SEED"`
	OTelEndpoint    string `env:"LAMPDRAGON_OTEL_ENDPOINT"`
	OTelEnabled     bool   `env:"LAMPDRAGON_OTEL_ENABLED" envDefault:"true"`
	OTelServiceName string `env:"LAMPDRAGON_OTEL_SERVICE_NAME" envDefault:"lampdragon"`
}

// Load reads dotenvPath when it exists, then the process environment. Values
// already set in the environment win over the file.
func Load(dotenvPath string) (Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("LAMPDRAGON_DB_DSN is required for %s storage", c.Storage)
		}
	case StorageSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("LAMPDRAGON_SQLITE_PATH is required for %s storage", c.Storage)
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	if c.StartingGold < 0 {
		return fmt.Errorf("LAMPDRAGON_STARTING_GOLD must not be negative")
	}
	return nil
}
