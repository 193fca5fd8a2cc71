package config

import (
	"fmt"
	"os"
	"strconv"
)

// DatabaseConfig holds connection settings for a single Postgres instance.
// The service talks to two of them: the primary ower database and the
// remote identification registry used for IPN cross-referencing.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN builds a lib/pq connection string.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// MatchConfig tunes the imprecise-matching heuristics used when joining
// phone rows to debtors and when resolving history records by name.
// Kept configurable so the false-positive tradeoff stays visible.
type MatchConfig struct {
	// IPNSuffixLen is how many trailing digits of the tax identifier
	// participate in the phone join (debtor identifiers are stored masked).
	IPNSuffixLen int
	// NameMode is "substring" or "exact" for history-record name lookups.
	NameMode string
}

// Config ower-data (HTTP API) configuration.
type Config struct {
	HTTP struct {
		Addr string
	}
	Database DatabaseConfig
	// RemoteEnabled toggles the remote registry cross-reference. When the
	// remote DB is unreachable lookups degrade to empty results anyway.
	RemoteEnabled  bool
	RemoteDatabase DatabaseConfig
	RemoteTable    string
	Redis          struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	// DocService is the external document-generation collaborator.
	DocService struct {
		BaseURL string
	}
	Match MatchConfig
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "ower")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.RemoteEnabled = getEnv("REMOTE_DB_ENABLED", "true") == "true"
	cfg.RemoteDatabase.Host = getEnv("REMOTE_DB_HOST", "localhost")
	cfg.RemoteDatabase.Port = parseInt(getEnv("REMOTE_DB_PORT", "5432"), 5432)
	cfg.RemoteDatabase.User = getEnv("REMOTE_DB_USER", "postgres")
	cfg.RemoteDatabase.Password = getEnv("REMOTE_DB_PASSWORD", "postgres")
	cfg.RemoteDatabase.Database = getEnv("REMOTE_DB_NAME", "registry")
	cfg.RemoteDatabase.SSLMode = getEnv("REMOTE_DB_SSLMODE", "disable")
	cfg.RemoteTable = getEnv("REMOTE_DB_TABLE", "public.person_registry")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.DocService.BaseURL = getEnv("DOC_SERVICE_URL", "http://localhost:8090")

	cfg.Match.IPNSuffixLen = parseInt(getEnv("MATCH_IPN_SUFFIX_LEN", "3"), 3)
	cfg.Match.NameMode = getEnv("MATCH_NAME_MODE", "substring")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
