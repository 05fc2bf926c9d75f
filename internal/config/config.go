// Package config loads tracker settings from the environment, an optional
// .env file and an optional YAML/TOML/JSON config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ConfigError string

func (e ConfigError) Error() string {
	return string(e)
}

const (
	ErrUnknownBackend      = ConfigError("STORE_BACKEND must be redis or postgres")
	ErrMissingDatabaseURL  = ConfigError("DATABASE_URL is required for the postgres backend")
	ErrMissingAPIKey       = ConfigError("BOT_API_KEY is required")
	ErrInvalidTimeout      = ConfigError("CONNECT_TIMEOUT must be positive")
	ErrMissingDiscordAppID = ConfigError("APPLICATION_ID is required when DISCORD_TOKEN is set")
)

const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Env      string `mapstructure:"tracker_env"`
	HTTPAddr string `mapstructure:"http_addr"`

	// BotAPIKey is the shared secret the chat bot and admins present
	BotAPIKey string `mapstructure:"bot_api_key"`

	StoreBackend   string        `mapstructure:"store_backend"`
	RedisAddr      string        `mapstructure:"redis_addr"`
	RedisPassword  string        `mapstructure:"redis_password"`
	RedisDB        int           `mapstructure:"redis_db"`
	DatabaseURL    string        `mapstructure:"database_url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`

	// Discord is optional; the bot only starts when DiscordToken is set
	DiscordToken  string `mapstructure:"discord_token"`
	ApplicationID string `mapstructure:"application_id"`
	GuildID       string `mapstructure:"guild_id"`

	CORSAllowedOrigins []string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tracker_env", "development")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("bot_api_key", "")
	v.SetDefault("store_backend", BackendRedis)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("database_url", "")
	v.SetDefault("connect_timeout", "30s")
	v.SetDefault("discord_token", "")
	v.SetDefault("application_id", "")
	v.SetDefault("guild_id", "")
	v.SetDefault("cors_allowed_origins", "")
}

// Load reads the configuration. path may be empty; environment variables
// always win over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	cfg.CORSAllowedOrigins = splitList(v.Get("cors_allowed_origins"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// splitList accepts a comma separated string (env) or a list (config file)
func splitList(raw interface{}) []string {
	var items []string
	switch val := raw.(type) {
	case string:
		items = strings.Split(val, ",")
	case []interface{}:
		for _, item := range val {
			items = append(items, fmt.Sprint(item))
		}
	case []string:
		items = val
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks the settings every command needs
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendRedis:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	default:
		return ErrUnknownBackend
	}
	if c.ConnectTimeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// ValidateServe checks the extra settings the server needs
func (c *Config) ValidateServe() error {
	if c.BotAPIKey == "" {
		return ErrMissingAPIKey
	}
	if c.DiscordToken != "" && c.ApplicationID == "" {
		return ErrMissingDiscordAppID
	}
	return nil
}

func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}
