package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesFileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  driver: memory
jwt:
  signing_key: test-key
organizer:
  code: "2468"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "memory" {
		t.Fatalf("expected memory driver, got %q", cfg.Database.Driver)
	}
	if cfg.Activity.FeedLimit != 12 {
		t.Fatalf("expected default feed limit 12, got %d", cfg.Activity.FeedLimit)
	}
	if cfg.Session.OrganizerTTL != 8*time.Hour {
		t.Fatalf("expected default organizer ttl 8h, got %s", cfg.Session.OrganizerTTL)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: memory
jwt:
  signing_key: from-file
organizer:
  code: "2468"
`)
	t.Setenv("JWT_SIGNING_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWT.SigningKey != "from-env" {
		t.Fatalf("expected env override, got %q", cfg.JWT.SigningKey)
	}
}

func TestLoadRequiresSigningKey(t *testing.T) {
	path := writeConfig(t, `
organizer:
  code: "2468"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected missing signing key to fail")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: mongo
jwt:
  signing_key: k
organizer:
  code: "1"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected unknown driver to fail")
	}
}

func TestValidateRejectsMemoryDriverInRelease(t *testing.T) {
	path := writeConfig(t, `
server:
  mode: release
database:
  driver: memory
jwt:
  signing_key: test-key
organizer:
  code: "2468"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected memory driver to be refused in release mode")
	}
}

func TestAutoMigrateDefaultsOff(t *testing.T) {
	path := writeConfig(t, `
jwt:
  signing_key: test-key
organizer:
  code: "2468"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Postgres.AutoMigrate {
		t.Fatal("expected auto_migrate to default to false")
	}
}
