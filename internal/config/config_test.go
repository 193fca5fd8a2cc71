package config

import (
	"os"
	"testing"
)

func TestLoad_DefaultValues(t *testing.T) {
	os.Clearenv()

	cfg := Load()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("Expected HTTP_ADDR default ':8080', got '%s'", cfg.HTTP.Addr)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Expected DB_HOST default 'localhost', got '%s'", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Expected DB_PORT default 5432, got %d", cfg.Database.Port)
	}
	if cfg.Database.Database != "ower" {
		t.Errorf("Expected DB_NAME default 'ower', got '%s'", cfg.Database.Database)
	}
	if !cfg.RemoteEnabled {
		t.Error("Expected remote registry enabled by default")
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Expected REDIS_ADDR default 'localhost:6379', got '%s'", cfg.Redis.Addr)
	}
	if cfg.Match.IPNSuffixLen != 3 {
		t.Errorf("Expected MATCH_IPN_SUFFIX_LEN default 3, got %d", cfg.Match.IPNSuffixLen)
	}
	if cfg.Match.NameMode != "substring" {
		t.Errorf("Expected MATCH_NAME_MODE default 'substring', got '%s'", cfg.Match.NameMode)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected LOG_LEVEL default 'info', got '%s'", cfg.Log.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REMOTE_DB_ENABLED", "false")
	t.Setenv("MATCH_NAME_MODE", "exact")

	cfg := Load()

	if cfg.Database.Port != 6543 {
		t.Errorf("Expected DB_PORT 6543, got %d", cfg.Database.Port)
	}
	if cfg.RemoteEnabled {
		t.Error("Expected remote registry disabled")
	}
	if cfg.Match.NameMode != "exact" {
		t.Errorf("Expected MATCH_NAME_MODE 'exact', got '%s'", cfg.Match.NameMode)
	}
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "app",
		Password: "secret",
		Database: "ower",
		SSLMode:  "disable",
	}

	want := "host=db.local port=5432 user=app password=secret dbname=ower sslmode=disable"
	if got := c.GetDSN(); got != want {
		t.Errorf("GetDSN: got %q, want %q", got, want)
	}
}

func TestParseInt_FallsBackOnGarbage(t *testing.T) {
	if got := parseInt("abc", 7); got != 7 {
		t.Errorf("Expected fallback 7, got %d", got)
	}
}
