package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment overrides for file locations.
const (
	EnvCards  = "TUIVOCAB_CARDS"
	EnvDB     = "TUIVOCAB_DB"
	EnvConfig = "TUIVOCAB_CONFIG"
)

// LoadEnv loads variables from the given .env files (default ".env") without
// overriding variables already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
