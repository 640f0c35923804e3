package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for heritagebot
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	Chat      ChatConfig      `mapstructure:"chat"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Weather   WeatherConfig   `mapstructure:"weather"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	BaseURL      string   `mapstructure:"base_url"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// AdminConfig holds admin authentication configuration
type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// DatabaseConfig holds the catalog database location
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// KnowledgeConfig points at the static documents
type KnowledgeConfig struct {
	Path       string `mapstructure:"path"`
	CatalogDir string `mapstructure:"catalog_dir"`
}

// ChatConfig holds conversation settings
type ChatConfig struct {
	ReplyDelay    time.Duration `mapstructure:"reply_delay"`
	SessionIdle   time.Duration `mapstructure:"session_idle"`
	SweepSchedule string        `mapstructure:"sweep_schedule"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	RequestsPerHour int  `mapstructure:"requests_per_hour"`
	Burst           int  `mapstructure:"burst"`
}

// WeatherConfig holds the weather API and cache settings
type WeatherConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
}

// AuthConfig holds the external auth API settings
type AuthConfig struct {
	APIBaseURL string `mapstructure:"api_base_url"`
	JWTSecret  string `mapstructure:"jwt_secret"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// Load loads configuration from .env, file and environment
func Load(configPath string) (*Config, error) {
	// .env only seeds the process environment; real env vars win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("HERITAGEBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("admin.api_key", "")

	v.SetDefault("database.path", "./data/catalog.db")

	v.SetDefault("knowledge.path", "./data/chatbotData.json")
	v.SetDefault("knowledge.catalog_dir", "./data")

	v.SetDefault("chat.reply_delay", time.Second)
	v.SetDefault("chat.session_idle", 30*time.Minute)
	v.SetDefault("chat.sweep_schedule", "@every 1m")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_hour", 600)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("weather.cache_ttl", 5*time.Minute)
	v.SetDefault("weather.redis_addr", "")
	v.SetDefault("weather.redis_password", "")
	v.SetDefault("weather.redis_db", 0)

	v.SetDefault("auth.api_base_url", "http://localhost:5000/api/auth")
	v.SetDefault("auth.jwt_secret", "")

	v.SetDefault("log.development", false)
	v.SetDefault("log.level", "info")
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}
	if c.Knowledge.Path == "" {
		return errors.New("knowledge.path is required")
	}
	if c.Chat.ReplyDelay < 0 {
		return fmt.Errorf("invalid chat.reply_delay: %s", c.Chat.ReplyDelay)
	}
	if c.Chat.SessionIdle <= 0 {
		return fmt.Errorf("invalid chat.session_idle: %s", c.Chat.SessionIdle)
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerHour <= 0 {
		return fmt.Errorf("invalid rate_limit.requests_per_hour: %d", c.RateLimit.RequestsPerHour)
	}
	return nil
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
