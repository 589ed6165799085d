// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "tuivocab"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultCardsPath returns the card corpus path, honoring TUIVOCAB_CARDS.
func DefaultCardsPath() string {
	return envOrDefault(EnvCards, filepath.Join(XDGConfigHome(), appName, "vocab.json"))
}

// DefaultDBPath returns the SQLite database path, honoring TUIVOCAB_DB.
func DefaultDBPath() string {
	return envOrDefault(EnvDB, filepath.Join(XDGDataHome(), appName, appName+".db"))
}

// DefaultConfigPath returns the TOML config path, honoring TUIVOCAB_CONFIG.
func DefaultConfigPath() string {
	return envOrDefault(EnvConfig, filepath.Join(XDGConfigHome(), appName, "config.toml"))
}
