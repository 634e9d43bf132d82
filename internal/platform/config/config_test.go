package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"LAMPDRAGON_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("LAMPDRAGON_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LAMPDRAGON_STORAGE", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.Storage != StorageMemory || cfg.StartingGold != 50 || cfg.DefaultName != "Lampy" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadReadsDotenvWithoutOverridingEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "LAMPDRAGON_STORAGE=SQLite\nLAMPDRAGON_STARTING_GOLD=80\nLAMPDRAGON_DEFAULT_NAME=FromFile\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	// t.Setenv restores these; the file only fills what is unset.
	t.Setenv("LAMPDRAGON_DEFAULT_NAME", "FromEnv")
	t.Setenv("LAMPDRAGON_STORAGE", "")
	os.Unsetenv("LAMPDRAGON_STORAGE")
	t.Setenv("LAMPDRAGON_STARTING_GOLD", "")
	os.Unsetenv("LAMPDRAGON_STARTING_GOLD")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage != StorageSQLite || cfg.StartingGold != 80 || cfg.DefaultName != "FromEnv" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadMissingDotenvIsIgnored(t *testing.T) {
	t.Setenv("LAMPDRAGON_STORAGE", "memory")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing dotenv to be ignored, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]Config{
		"postgres without dsn": {Storage: StoragePostgres},
		"sqlite without path":  {Storage: StorageSQLite},
		"unknown storage":      {Storage: "redis"},
		"negative gold":        {Storage: StorageMemory, StartingGold: -1},
	}
	for name, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
	if err := (Config{Storage: StoragePostgres, DBDSN: "postgres://x"}).Validate(); err != nil {
		t.Fatalf("expected valid postgres config, got %v", err)
	}
}
