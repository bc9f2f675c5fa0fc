package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration (session store).
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// MongoDB (appointment records). Optional: empty disables record keeping.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Google Calendar.
	GoogleCredentialsPath string `mapstructure:"GOOGLE_CREDENTIALS_PATH"`
	CalendarID            string `mapstructure:"CALENDAR_ID"`

	// Gemini.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Shop parameters.
	ShopTimezone    string `mapstructure:"SHOP_TIMEZONE"`
	CatalogPath     string `mapstructure:"CATALOG_PATH"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
}

// SessionTTL returns the session expiry as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// IsProduction checks if the environment is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load initializes Viper to read config values from env, file, or defaults,
// and returns an immutable Config for the process lifetime.
func Load() (*Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SHOP_TIMEZONE", "America/Chicago")
	viper.SetDefault("CATALOG_PATH", "knowledge_base.yaml")
	viper.SetDefault("SESSION_TTL_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations that cannot serve requests. Missing
// credentials are fatal at startup, never discovered per-request.
func (c *Config) validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config: GEMINI_API_KEY is required")
	}
	if c.GoogleCredentialsPath == "" {
		return fmt.Errorf("config: GOOGLE_CREDENTIALS_PATH is required")
	}
	if c.CalendarID == "" {
		return fmt.Errorf("config: CALENDAR_ID is required")
	}
	if c.CatalogPath == "" {
		return fmt.Errorf("config: CATALOG_PATH is required")
	}
	if _, err := time.LoadLocation(c.ShopTimezone); err != nil {
		return fmt.Errorf("config: invalid SHOP_TIMEZONE %q: %w", c.ShopTimezone, err)
	}
	return nil
}
