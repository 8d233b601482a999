package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	FatSecret FatSecretConfig
	Auth      AuthConfig
	Cache     CacheConfig
	Export    ExportConfig
	Temporal  TemporalConfig
	Log       LogConfig
}

// FatSecretConfig holds the API client settings
type FatSecretConfig struct {
	ConsumerKey    string        `mapstructure:"consumer_key"`
	ConsumerSecret string        `mapstructure:"consumer_secret"`
	BaseURL        string        `mapstructure:"base_url"`
	MaxRetries     int           `mapstructure:"max_retries"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// AuthConfig holds the OAuth flow and token storage settings
type AuthConfig struct {
	RequestTokenURL string `mapstructure:"request_token_url"`
	AuthorizeURL    string `mapstructure:"authorize_url"`
	AccessTokenURL  string `mapstructure:"access_token_url"`
	CallbackAddr    string `mapstructure:"callback_addr"`
	CallbackURL     string `mapstructure:"callback_url"`
	TokenFile       string `mapstructure:"token_file"`
}

// CacheConfig holds the entry cache settings
type CacheConfig struct {
	Type     string `mapstructure:"type"` // "memory" or "redis"
	RedisURL string `mapstructure:"redis_url"`
}

// ExportConfig holds the JSON export settings
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// TemporalConfig holds the scheduled-sync settings
type TemporalConfig struct {
	HostPort     string `mapstructure:"host_port"`
	Namespace    string `mapstructure:"namespace"`
	TaskQueue    string `mapstructure:"task_queue"`
	CronSchedule string `mapstructure:"cron_schedule"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/calorista/")

	// Environment variable settings
	v.SetEnvPrefix("CALORISTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// FatSecret defaults. Credentials default to empty so viper registers
	// the keys and picks them up from the environment.
	v.SetDefault("fatsecret.consumer_key", "")
	v.SetDefault("fatsecret.consumer_secret", "")
	v.SetDefault("fatsecret.base_url", "https://platform.fatsecret.com/rest/server.api")
	v.SetDefault("fatsecret.max_retries", 2)
	v.SetDefault("fatsecret.timeout", "10s")

	// Auth defaults
	v.SetDefault("auth.request_token_url", "https://authentication.fatsecret.com/oauth/request_token")
	v.SetDefault("auth.authorize_url", "https://authentication.fatsecret.com/oauth/authorize")
	v.SetDefault("auth.access_token_url", "https://authentication.fatsecret.com/oauth/access_token")
	v.SetDefault("auth.callback_addr", ":8080")
	v.SetDefault("auth.callback_url", "http://localhost:8080/callback")
	v.SetDefault("auth.token_file", "auth_tokens/tokens.json")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "redis://localhost:6379")

	// Export defaults
	v.SetDefault("export.dir", "historical_food_data")

	// Temporal defaults
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "calorista-sync")
	v.SetDefault("temporal.cron_schedule", "0 6 * * *")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.FatSecret.ConsumerKey == "" {
		return fmt.Errorf("FatSecret consumer key is required (set CALORISTA_FATSECRET_CONSUMER_KEY)")
	}

	if config.FatSecret.ConsumerSecret == "" {
		return fmt.Errorf("FatSecret consumer secret is required (set CALORISTA_FATSECRET_CONSUMER_SECRET)")
	}

	if config.FatSecret.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got: %d", config.FatSecret.MaxRetries)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	return nil
}
