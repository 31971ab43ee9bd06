// Package config loads process settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Port is the fixed listening port.
const Port = 3000

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

type Config struct {
	StoreDriver    string
	MongoURI       string
	MongoDatabase  string
	DatabasePath   string
	BcryptCost     int
	LogLevel       slog.Level
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads the configuration from environment variables and validates it.
func Load() (Config, error) {
	cfg := Config{
		StoreDriver:   envOrDefault("STORE_DRIVER", DriverMongo),
		MongoDatabase: envOrDefault("MONGO_DB", "events"),
		DatabasePath:  envOrDefault("DATABASE_PATH", "events.db"),
	}

	switch cfg.StoreDriver {
	case DriverMongo:
		uri, err := mongoURI(cfg.MongoDatabase)
		if err != nil {
			return cfg, err
		}
		cfg.MongoURI = uri
	case DriverSQLite:
	default:
		return cfg, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverMongo, DriverSQLite, cfg.StoreDriver)
	}

	cost, err := intEnv("BCRYPT_COST", 12)
	if err != nil {
		return cfg, err
	}
	if cost < 4 || cost > 14 {
		return cfg, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cost)
	}
	cfg.BcryptCost = cost

	if err := cfg.LogLevel.UnmarshalText([]byte(envOrDefault("LOG_LEVEL", "info"))); err != nil {
		return cfg, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	rps, err := strconv.ParseFloat(envOrDefault("RATE_LIMIT_RPS", "10"), 64)
	if err != nil || rps < 0 {
		return cfg, fmt.Errorf("invalid RATE_LIMIT_RPS %q", os.Getenv("RATE_LIMIT_RPS"))
	}
	cfg.RateLimitRPS = rps

	burst, err := intEnv("RATE_LIMIT_BURST", 20)
	if err != nil {
		return cfg, err
	}
	if burst < 1 {
		return cfg, fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", burst)
	}
	cfg.RateLimitBurst = burst

	return cfg, nil
}

// RateLimitEnabled reports whether per-client limiting should be installed.
func (c Config) RateLimitEnabled() bool {
	return c.RateLimitRPS > 0
}

// mongoURI prefers MONGO_URI and otherwise assembles one from its parts.
func mongoURI(database string) (string, error) {
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		return uri, nil
	}

	srv, err := strconv.ParseBool(envOrDefault("MONGO_SRV", "false"))
	if err != nil {
		return "", fmt.Errorf("invalid MONGO_SRV: %w", err)
	}

	u := &url.URL{
		Scheme:   "mongodb",
		Host:     envOrDefault("MONGO_HOST", "localhost:27017"),
		Path:     "/" + database,
		RawQuery: "retryWrites=true&w=majority",
	}
	if srv {
		u.Scheme = "mongodb+srv"
	}

	user, password := os.Getenv("MONGO_USER"), os.Getenv("MONGO_PASSWORD")
	switch {
	case user != "":
		u.User = url.UserPassword(user, password)
	case password != "":
		return "", fmt.Errorf("MONGO_PASSWORD is set without MONGO_USER")
	}
	return u.String(), nil
}

const unparseableURI = "<unparseable uri>"

// Redacted returns the connection string with the password masked, for logs.
// A string that does not parse is replaced entirely.
func (c Config) Redacted() string {
	u, err := url.Parse(c.MongoURI)
	if err != nil {
		return unparseableURI
	}
	if u.User == nil {
		return c.MongoURI
	}
	return strings.Replace(u.Redacted(), "xxxxx", "***", 1)
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
