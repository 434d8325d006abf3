package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Stream   StreamConfig   `mapstructure:"stream"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	QuoteAPI QuoteAPIConfig `mapstructure:"quote_api"`
	Trigger  TriggerConfig  `mapstructure:"trigger"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Tokens   TokensConfig   `mapstructure:"tokens"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ServerConfig holds REST server configuration.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// StreamConfig holds settings for the websocket session server.
type StreamConfig struct {
	Port           string        `mapstructure:"port"`
	ReadLimitBytes int64         `mapstructure:"read_limit_bytes"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// QuoteAPIConfig holds configuration for the external quoting backend.
type QuoteAPIConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	TokenLimit      int           `mapstructure:"token_limit"`
	UserAddress     string        `mapstructure:"user_address"`
	DefaultSlippage string        `mapstructure:"default_slippage"`
}

// TriggerConfig holds settings for the debounced quote fetch.
type TriggerConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// CacheConfig holds settings for the token cache. Entries never expire;
// the cleanup interval only bounds the janitor goroutine.
type CacheConfig struct {
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// TokensConfig points at an optional override of the token priority tables.
type TokensConfig struct {
	PriorityFile string `mapstructure:"priority_file"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "bridgequote")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("stream.port", "8081")
	v.SetDefault("stream.read_limit_bytes", 64*1024)
	v.SetDefault("stream.write_timeout", "10s")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("quote_api.base_url", "http://localhost:3001/api/v1")
	v.SetDefault("quote_api.timeout", "15s")
	v.SetDefault("quote_api.token_limit", 20)
	v.SetDefault("quote_api.user_address", "0x742d35Cc6634C0532925a3b8D4C9db96C4b4d8b6")
	v.SetDefault("quote_api.default_slippage", "0.5")
	v.SetDefault("trigger.debounce", "1s")
	v.SetDefault("cache.cleanup_interval", "1h")
	v.SetDefault("tokens.priority_file", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		fmt.Printf("Warning: Config file not found in %s or '.', using defaults/env vars\n", configPath)
	}

	v.SetEnvPrefix("BRIDGEQUOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the quote flow cannot run without and
// normalizes the user address to its checksum form.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.QuoteAPI.BaseURL) == "" {
		return errors.New("quote_api.base_url must not be empty")
	}
	if c.QuoteAPI.Timeout <= 0 {
		return fmt.Errorf("quote_api.timeout must be positive, got %v", c.QuoteAPI.Timeout)
	}
	if c.QuoteAPI.TokenLimit <= 0 {
		return fmt.Errorf("quote_api.token_limit must be positive, got %d", c.QuoteAPI.TokenLimit)
	}
	if !common.IsHexAddress(c.QuoteAPI.UserAddress) {
		return fmt.Errorf("quote_api.user_address %q is not a valid hex address", c.QuoteAPI.UserAddress)
	}
	c.QuoteAPI.UserAddress = common.HexToAddress(c.QuoteAPI.UserAddress).Hex()
	c.QuoteAPI.BaseURL = strings.TrimRight(c.QuoteAPI.BaseURL, "/")
	if c.Trigger.Debounce <= 0 {
		return fmt.Errorf("trigger.debounce must be positive, got %v", c.Trigger.Debounce)
	}
	if c.QuoteAPI.DefaultSlippage == "" {
		c.QuoteAPI.DefaultSlippage = "0.5"
	}
	return nil
}

func (c QuoteAPIConfig) GetTimeout() time.Duration {
	return c.Timeout
}

func (c TriggerConfig) GetDebounce() time.Duration {
	return c.Debounce
}

func (c CacheConfig) GetCleanupInterval() time.Duration {
	return c.CleanupInterval
}
