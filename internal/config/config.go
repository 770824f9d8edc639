// Package config reads service settings from the process environment.
// Callers load any .env file with godotenv before calling Load.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"grievance-insights-go/internal/classifier"
)

type Config struct {
	Port          string
	Environment   string
	LogLevel      string
	DatasetPath   string
	KeywordsPath  string
	SourceURL     string
	IntakeTimeout time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		Port:         envOr("PORT", "8080"),
		Environment:  os.Getenv("ENVIRONMENT"),
		LogLevel:     envOr("LOG_LEVEL", "info"),
		DatasetPath:  os.Getenv("DATASET_PATH"),
		KeywordsPath: os.Getenv("KEYWORDS_PATH"),
		SourceURL:    os.Getenv("GRIEVANCE_SOURCE_URL"),
	}
	secs, err := strconv.Atoi(envOr("INTAKE_TIMEOUT_SEC", "12"))
	if err != nil || secs <= 0 {
		return Config{}, fmt.Errorf("config.Load: INTAKE_TIMEOUT_SEC must be a positive integer, got %q", os.Getenv("INTAKE_TIMEOUT_SEC"))
	}
	cfg.IntakeTimeout = time.Duration(secs) * time.Second
	return cfg, nil
}

// Classifier returns the keyword tables from KeywordsPath, or the defaults.
func (c Config) Classifier() (classifier.Config, error) {
	if c.KeywordsPath == "" {
		return classifier.DefaultConfig(), nil
	}
	return classifier.LoadConfig(c.KeywordsPath)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
