// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	StoragePath  string `mapstructure:"STORAGE_PATH"`
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	TextModel    string `mapstructure:"GEMINI_TEXT_MODEL"`
	ImageModel   string `mapstructure:"GEMINI_IMAGE_MODEL"`
	RedisURL     string `mapstructure:"REDIS_URL"`
	Env          string `mapstructure:"APP_ENV"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; defaults and environment cover everything.
	_ = viper.ReadInConfig()

	viper.SetDefault("STORAGE_PATH", "trinethra.db")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_TEXT_MODEL", "gemini-3-flash-preview")
	viper.SetDefault("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("APP_ENV", "development")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present.
func (c *Config) Validate() error {
	if c.StoragePath == "" {
		return errors.New("STORAGE_PATH is required")
	}
	if c.TextModel == "" || c.ImageModel == "" {
		return errors.New("GEMINI_TEXT_MODEL and GEMINI_IMAGE_MODEL are required")
	}
	if c.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY is not set. Assistant features will fall back to local defaults.")
	}
	return nil
}
