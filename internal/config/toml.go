// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Study StudyConfig `toml:"study"`
	Quiz  QuizConfig  `toml:"quiz"`
	Daily DailyConfig `toml:"daily"`
	List  ListConfig  `toml:"list"`
	Stats StatsConfig `toml:"stats"`
}

// StudyConfig maps study-related settings.
type StudyConfig struct {
	Cards *string `toml:"cards"`
	Deck  *string `toml:"deck"`
}

// QuizConfig maps quiz settings.
type QuizConfig struct {
	Type *string `toml:"type"`
}

// DailyConfig maps daily goal settings.
type DailyConfig struct {
	Goal *int `toml:"goal"`
}

// ListConfig maps list command settings.
type ListConfig struct {
	Limit *int `toml:"limit"`
}

// StatsConfig maps stats command settings.
type StatsConfig struct {
	ForecastDays *int `toml:"forecast-days"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
