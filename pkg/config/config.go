package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Database
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Simulation
	Era              string `mapstructure:"ERA"`
	LeagueSeed       int64  `mapstructure:"LEAGUE_SEED"`
	StrictValidation bool   `mapstructure:"STRICT_VALIDATION"`

	// Slate runner
	SlateWorkers int     `mapstructure:"SLATE_WORKERS"`
	SlateRate    float64 `mapstructure:"SLATE_RATE"`
	SlateCron    string  `mapstructure:"SLATE_CRON"`

	// Cached views
	ViewCacheTTL time.Duration `mapstructure:"VIEW_CACHE_TTL"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "league.db")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("ERA", "default")
	viper.SetDefault("LEAGUE_SEED", 1)
	viper.SetDefault("STRICT_VALIDATION", false)
	viper.SetDefault("SLATE_WORKERS", 4)
	viper.SetDefault("SLATE_RATE", 0) // games/sec cap, 0 = unpaced
	viper.SetDefault("SLATE_CRON", "")
	viper.SetDefault("VIEW_CACHE_TTL", "10m")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
