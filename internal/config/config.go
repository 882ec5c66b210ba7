package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	API      API      `mapstructure:"api"`
	Sync     Sync     `mapstructure:"sync"`
	Logger   Logger   `mapstructure:"logger"`
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
}

// API holds the configuration for the backend HTTP API.
type API struct {
	BaseURL        string  `mapstructure:"base_url"`
	Timeout        int     `mapstructure:"timeout"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Sync holds the configuration for the data-synchronization layer.
type Sync struct {
	PollInterval int `mapstructure:"poll_interval"` // live feed refresh, in seconds
	PageSize     int `mapstructure:"page_size"`
}

// Server holds the configuration for the snapshot web server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Database holds the configuration for the local session database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("api.rate_limit", 10) // requests per second
	viper.SetDefault("api.rate_limit_burst", 5)
	viper.SetDefault("sync.poll_interval", 30)
	viper.SetDefault("sync.page_size", 20)

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
