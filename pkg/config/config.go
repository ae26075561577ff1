package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Parser  ParserConfig
	Export  ExportConfig
	Logging LoggingConfig
}

type ParserConfig struct {
	PaymentMethod string // "cash" or "credit"
	StrictTotals  bool
	LabelWindow   int // characters scanned after a totals label
}

type ExportConfig struct {
	Dir    string
	Format string // json, csv, xlsx, console
}

type LoggingConfig struct {
	Level  string
	Format string // json or text
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Parser: ParserConfig{
			PaymentMethod: getEnv("PAYMENT_METHOD", "cash"),
			StrictTotals:  getEnvAsBool("STRICT_TOTALS", false),
			LabelWindow:   getEnvAsInt("LABEL_WINDOW", 90),
		},
		Export: ExportConfig{
			Dir:    getEnv("EXPORT_DIR", "."),
			Format: getEnv("EXPORT_FORMAT", "json"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	method := strings.ToLower(cfg.Parser.PaymentMethod)
	if method != "cash" && method != "credit" {
		return nil, fmt.Errorf("PAYMENT_METHOD must be cash or credit, got %q", cfg.Parser.PaymentMethod)
	}
	cfg.Parser.PaymentMethod = method

	if cfg.Parser.LabelWindow <= 0 {
		return nil, fmt.Errorf("LABEL_WINDOW must be positive, got %d", cfg.Parser.LabelWindow)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
