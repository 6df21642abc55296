// Package config loads service configuration from file and environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the complete service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Provider ProviderConfig `mapstructure:"provider"`
	Chart    ChartConfig    `mapstructure:"chart"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig represents the HTTP host configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ProviderConfig points at the external forecast/dataset service.
type ProviderConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// ChartConfig tunes the visualization pipeline.
type ChartConfig struct {
	// Window is the trailing historical slice shown on a chart.
	Window int `mapstructure:"window"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional file path with environment
// variable overrides (prefix FORECASTVIZ). A missing file falls back to
// defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/forecastviz")
	}

	setDefaults(v)

	v.SetEnvPrefix("FORECASTVIZ")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("provider.base_url", "http://localhost:8000")

	v.SetDefault("chart.window", 12)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Chart.Window < 1 {
		return nil, fmt.Errorf("chart.window must be at least 1, got %d", cfg.Chart.Window)
	}
	return &cfg, nil
}
