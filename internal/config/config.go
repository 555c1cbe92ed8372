package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth for the service's own API; empty disables auth.
	APIKey string

	// Gemini models
	GeminiAPIKey      string
	GeminiModel       string
	GeminiVisionModel string

	// Extraction tuning. Both are unvalidated heuristics from field use,
	// kept configurable rather than hard-coded.
	MinJapaneseChars int // native extraction accepted at or above this count
	TableCellGap     int // min whitespace run separating table cells

	// Upload limits
	MaxUploadBytes int64
	MaxFiles       int

	// Rolling window for LLM latency stats
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("REGSHEET_API_KEY"),

		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiVisionModel: envOr("GEMINI_VISION_MODEL", ""),

		MinJapaneseChars: envInt("MIN_JAPANESE_CHARS", 50),
		TableCellGap:     envInt("TABLE_CELL_GAP", 2),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB
		MaxFiles:       envInt("MAX_FILES", 10),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.MinJapaneseChars <= 0 {
		cfg.MinJapaneseChars = 50
	}
	if cfg.TableCellGap <= 0 {
		cfg.TableCellGap = 2
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}
	if cfg.MaxFiles <= 0 {
		cfg.MaxFiles = 10
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

// Validate fails fast on a missing credential so the failure surfaces at
// startup, not on the first upload.
func (c Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
