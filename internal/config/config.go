// Package config loads process configuration from file and environment.
// This is distinct from the persisted dashboard document: config controls
// how the server runs, the document holds what it serves.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Feeds   FeedsConfig   `mapstructure:"feeds"`
	Chat    ChatConfig    `mapstructure:"chat"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // "development" or "production"
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Format string `mapstructure:"format"` // "json" or "text"
	Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
}

// StorageConfig holds on-disk locations.
type StorageConfig struct {
	ConfigFile string `mapstructure:"config_file"` // the dashboard document
	UploadDir  string `mapstructure:"upload_dir"`  // uploaded link icons
	IconsDir   string `mapstructure:"icons_dir"`   // bundled group icons
}

// AuthConfig holds session configuration.
type AuthConfig struct {
	SessionSecret   string        `mapstructure:"session_secret"`
	SessionDuration time.Duration `mapstructure:"session_duration"`
}

// FeedsConfig bounds RSS fetching.
type FeedsConfig struct {
	Timeout       time.Duration `mapstructure:"timeout"`        // per-feed fetch timeout
	MaxConcurrent int           `mapstructure:"max_concurrent"` // fan-out limit
}

// ChatConfig bounds AI provider calls.
type ChatConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 5065)
	v.SetDefault("server.mode", "development")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.config_file", "./config.json")
	v.SetDefault("storage.upload_dir", "./static/uploads")
	v.SetDefault("storage.icons_dir", "./static/icons")
	v.SetDefault("auth.session_secret", "change-me-in-production")
	v.SetDefault("auth.session_duration", "24h")
	v.SetDefault("feeds.timeout", "10s")
	v.SetDefault("feeds.max_concurrent", 8)
	v.SetDefault("chat.timeout", "30s")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/linkboard/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, using defaults
	}

	v.SetEnvPrefix("LINKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}
