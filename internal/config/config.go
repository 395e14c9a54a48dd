package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Backend BackendConfig `mapstructure:"backend"`
	Import  ImportConfig  `mapstructure:"import"`
	Report  ReportConfig  `mapstructure:"report"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// BackendConfig points at the catalog backend every operation is forwarded
// to.
type BackendConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type ImportConfig struct {
	MaxFileSizeMB int `mapstructure:"max_file_size_mb"`
}

type ReportConfig struct {
	PollIntervalMS int `mapstructure:"poll_interval_ms"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/bookstore-admin")

	viper.SetEnvPrefix("BOOKADMIN")
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("server.port", "8090")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("backend.base_url", "http://localhost:8080/router")
	viper.SetDefault("backend.timeout_seconds", 30)
	viper.SetDefault("import.max_file_size_mb", 10)
	viper.SetDefault("report.poll_interval_ms", 3000)

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Printf("Config file not found, using defaults and environment variables\n")
		}
	}

	if backendURL := os.Getenv("BACKEND_URL"); backendURL != "" {
		viper.Set("backend.base_url", backendURL)
	}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		viper.Set("redis.url", redisURL)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
