package config

import (
	"log"
	"os"
)

type Config struct {
	Port string

	GCPProjectID string
	GCPLocation  string
	ModelName    string

	StorageBackend string // "memory", "sqlite" or "firestore"
	SQLitePath     string
	UseMockLLM     bool // true = never call the real model
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

// Load reads all env vars and builds the config
func Load() *Config {
	cfg := &Config{
		Port: getEnv("MOCKVIEW_PORT", "8080"),

		GCPProjectID: getEnv("MOCKVIEW_GCP_PROJECT", ""),
		GCPLocation:  getEnv("MOCKVIEW_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("MOCKVIEW_MODEL_NAME", "gemini-2.5-flash"),

		StorageBackend: getEnv("MOCKVIEW_STORAGE_BACKEND", "memory"),
		SQLitePath:     getEnv("MOCKVIEW_SQLITE_PATH", "mockview.db"),
		UseMockLLM:     getBoolEnv("MOCKVIEW_USE_MOCK_LLM", false),
	}

	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		log.Fatal("MOCKVIEW_GCP_PROJECT must be set for the firestore backend")
	}

	return cfg
}
