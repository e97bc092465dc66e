package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDSN          string
	LogFile        string
	RateLimit      int
	CookieSecure   bool
	TemplateReload bool
}

// Load reads .env when present, then the process environment. Malformed
// numbers and booleans fall back to their defaults.
func Load() Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "bludify.db"
	} // sqlite file in working directory

	return Config{
		Port:           strings.TrimPrefix(port, ":"),
		DBDSN:          dsn,
		LogFile:        os.Getenv("LOG_FILE"),
		RateLimit:      intEnv("RATE_LIMIT", 60),
		CookieSecure:   boolEnv("COOKIE_SECURE", false),
		TemplateReload: boolEnv("TEMPLATE_RELOAD", false),
	}
}

// Fields is the startup summary written to the log.
func (c Config) Fields() map[string]any {
	return map[string]any{
		"port":            c.Port,
		"db_dsn":          c.DBDSN,
		"log_file":        c.LogFile,
		"rate_limit":      c.RateLimit,
		"cookie_secure":   c.CookieSecure,
		"template_reload": c.TemplateReload,
	}
}

func intEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func boolEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
