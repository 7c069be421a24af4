package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Poderia ser uma lib externa */

type Config struct {
	Port                     string `mapstructure:"PORT"`
	DatabaseURL              string `mapstructure:"DATABASE_URL"`
	RedisURL                 string `mapstructure:"REDIS_URL"`
	HTTPTimeoutSeconds       int    `mapstructure:"HTTP_TIMEOUT"`
	MaxAttempts              int    `mapstructure:"MAX_ATTEMPTS"`
	BackoffSchedule          string `mapstructure:"BACKOFF_SCHEDULE"`
	RetentionHours           int    `mapstructure:"RETENTION_HOURS"`
	RetentionIntervalMinutes int    `mapstructure:"RETENTION_INTERVAL_MINUTES"`
	WorkerConcurrency        int    `mapstructure:"WORKER_CONCURRENCY"`
	CacheTTLSeconds          int    `mapstructure:"CACHE_TTL_SECONDS"`
	MaxBodyBytes             int64  `mapstructure:"MAX_BODY_BYTES"`
	VisibilityTimeoutSeconds int    `mapstructure:"VISIBILITY_TIMEOUT_SECONDS"`
	SeedFile                 string `mapstructure:"SEED_FILE"`
	Debug                    bool   `mapstructure:"DEBUG"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	// The .env file is optional; environment variables alone are enough.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("HTTP_TIMEOUT", 5)
	viper.SetDefault("MAX_ATTEMPTS", 5)
	viper.SetDefault("BACKOFF_SCHEDULE", "10,30,60,300,900")
	viper.SetDefault("RETENTION_HOURS", 72)
	viper.SetDefault("RETENTION_INTERVAL_MINUTES", 60)
	viper.SetDefault("WORKER_CONCURRENCY", 4)
	viper.SetDefault("CACHE_TTL_SECONDS", 0)
	viper.SetDefault("MAX_BODY_BYTES", 1<<20)
	viper.SetDefault("VISIBILITY_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SEED_FILE", "")
	viper.SetDefault("DEBUG", false)
}

// Validate checks cross-field constraints that viper cannot express
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("MAX_ATTEMPTS must be at least 1, got %d", c.MaxAttempts)
	}
	schedule, err := c.Backoff()
	if err != nil {
		return err
	}
	// Attempt N schedules attempt N+1 with schedule[N-1]
	if len(schedule) < c.MaxAttempts-1 {
		return fmt.Errorf("BACKOFF_SCHEDULE needs at least %d entries for MAX_ATTEMPTS=%d, got %d",
			c.MaxAttempts-1, c.MaxAttempts, len(schedule))
	}
	// The visibility timeout must outlive a full delivery attempt,
	// otherwise in-flight jobs get redelivered while still running
	if c.VisibilityTimeoutSeconds <= c.HTTPTimeoutSeconds {
		return fmt.Errorf("VISIBILITY_TIMEOUT_SECONDS (%d) must exceed HTTP_TIMEOUT (%d)",
			c.VisibilityTimeoutSeconds, c.HTTPTimeoutSeconds)
	}
	return nil
}

// Backoff parses BACKOFF_SCHEDULE into per-attempt delays
func (c *Config) Backoff() ([]time.Duration, error) {
	parts := strings.Split(c.BackoffSchedule, ",")
	schedule := make([]time.Duration, 0, len(parts))
	for _, part := range parts {
		seconds, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("parsing BACKOFF_SCHEDULE entry %q: %w", part, err)
		}
		if seconds < 0 {
			return nil, fmt.Errorf("BACKOFF_SCHEDULE entries cannot be negative: %d", seconds)
		}
		schedule = append(schedule, time.Duration(seconds)*time.Second)
	}
	return schedule, nil
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionHours) * time.Hour
}

func (c *Config) RetentionInterval() time.Duration {
	return time.Duration(c.RetentionIntervalMinutes) * time.Minute
}

// CacheTTL returns the cache entry TTL; zero means no expiry
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) VisibilityTimeout() time.Duration {
	return time.Duration(c.VisibilityTimeoutSeconds) * time.Second
}
