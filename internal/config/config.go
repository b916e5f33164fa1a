// Package config provides configuration loading and validation for the
// CodeSync backend. All configuration comes from environment variables;
// a .env file is loaded by main before any of this runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// App holds the process-wide configuration assembled at startup.
// Malformed configuration is a fatal startup error; nothing here is
// re-read after boot.
type App struct {
	Port        int
	DatabaseURL string

	// GeminiAPIKeys is the ordered credential pool for the generation layer.
	GeminiAPIKeys []string
	// ModelPriority lists model identifiers fastest/cheapest first.
	// Empty means the gateway default.
	ModelPriority []string

	// SandboxURL is the code-execution proxy target (Piston-compatible).
	SandboxURL string

	// ContestCacheTTL bounds how long aggregated contest listings are served
	// from the document store before refetching.
	ContestCacheTTL time.Duration
}

// Load reads and validates the application configuration from the
// environment.
func Load() (*App, error) {
	cfg := &App{
		Port:            8080,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		GeminiAPIKeys:   splitKeys(os.Getenv("GEMINI_API_KEYS")),
		ModelPriority:   splitList(os.Getenv("GEMINI_MODEL_PRIORITY")),
		SandboxURL:      getEnvDefault("SANDBOX_URL", "https://emkc.org/api/v2/piston"),
		ContestCacheTTL: time.Hour,
	}

	// Single-key deployments may still use the older variable name.
	if len(cfg.GeminiAPIKeys) == 0 {
		cfg.GeminiAPIKeys = splitKeys(os.Getenv("GEMINI_API_KEY"))
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT: %q", portStr)
		}
		cfg.Port = port
	}

	if ttlStr := os.Getenv("CONTEST_CACHE_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid CONTEST_CACHE_TTL: %q", ttlStr)
		}
		cfg.ContestCacheTTL = ttl
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	return cfg, nil
}

// splitKeys parses a comma-separated credential list, dropping empties so a
// trailing comma cannot smuggle a blank credential into the pool.
func splitKeys(raw string) []string {
	return splitList(raw)
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
