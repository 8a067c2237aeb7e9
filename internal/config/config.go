package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dgallion1/typograph/internal/typo"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Output format when the request does not name one.
	DefaultFormat string

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("TYPOGRAPH_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DefaultFormat: envOr("DEFAULT_FORMAT", "html"),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("TYPOGRAPH_API_KEY is required")
	}
	if _, err := typo.ParseFormat(c.DefaultFormat); err != nil {
		return fmt.Errorf("DEFAULT_FORMAT: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
