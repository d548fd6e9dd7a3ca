package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	// CatalogSkipExisting makes the catalog generator skip (brand, variant,
	// size) triples that already have a product instead of creating
	// duplicates. Off by default to keep the historical behavior.
	CatalogSkipExisting bool
}

// Load reads configuration from the environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	return Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseDSN:         getEnv("DATABASE_DSN", "file:kvm_inventory.db"),
		Env:                 getEnv("APP_ENV", "development"),
		CatalogSkipExisting: ParseBool("CATALOG_SKIP_EXISTING", false),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
