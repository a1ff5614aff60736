// Package config handles configuration for the server: defaults,
// environment overlay, and command-line flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Config holds runtime settings for the regrets server.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - DatabasePath: path to the SQLite database file (":memory:" for tests).
//   - TokenSecret: HMAC secret for signing bearer tokens (HS256). Required.
//   - BcryptCost: work factor for password hashing.
//   - LogLevel: slog level name (debug, info, warn, error).
type Config struct {
	Addr         string
	DatabasePath string
	TokenSecret  string
	BcryptCost   int
	LogLevel     string
}

// LoadDefaults populates Config with development defaults.
// TokenSecret has no default: it must come from the environment or flags.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.DatabasePath = "regrets.db"
	c.BcryptCost = 10
	c.LogLevel = "info"
}

// parseEnv overlays values from environment variables.
func parseEnv(c *Config) {
	if v := os.Getenv("REGRETS_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("REGRETS_DB_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("REGRETS_TOKEN_SECRET"); v != "" {
		c.TokenSecret = v
	}
	if v := os.Getenv("REGRETS_BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil {
			c.BcryptCost = cost
		}
	}
	if v := os.Getenv("REGRETS_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// parseFlags overlays values from command-line flags.
func parseFlags(c *Config) {
	flag.StringVar(&c.Addr, "addr", c.Addr, "HTTP bind address")
	flag.StringVar(&c.DatabasePath, "db", c.DatabasePath, "path to SQLite database file")
	flag.StringVar(&c.TokenSecret, "token-secret", c.TokenSecret, "HMAC secret for signing tokens")
	flag.IntVar(&c.BcryptCost, "bcrypt-cost", c.BcryptCost, "bcrypt work factor")
	flag.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	flag.Parse()
}

// Validate checks that required settings are present.
// A missing token secret is a fatal startup condition: every token ever
// issued is bound to it.
func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("token secret is required (set REGRETS_TOKEN_SECRET)")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment and finally from command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
