// Package config loads the vexdb server configuration from file,
// environment, and flags.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigName is the base name of the config file (vexdb.yaml).
	DefaultConfigName = "vexdb"
	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "VEXDB"
)

// Config holds the server configuration.
type Config struct {
	// Dimensions is the fixed vector dimensionality for the database.
	Dimensions int `mapstructure:"dimensions" yaml:"dimensions"`

	// Server holds HTTP server settings.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Log holds logging settings.
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Limits holds pagination bounds.
	Limits LimitsConfig `mapstructure:"limits" yaml:"limits"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the server bind address.
	Host string `mapstructure:"host" yaml:"host"`
	// Port is the server port.
	Port int `mapstructure:"port" yaml:"port"`
	// RequestTimeout bounds per-request handling time.
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	// RateLimit is the sustained request rate per second; 0 disables limiting.
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	// RateBurst is the token-bucket burst size used with RateLimit.
	RateBurst int `mapstructure:"rate_burst" yaml:"rate_burst"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
	// Format is "text" or "json".
	Format string `mapstructure:"format" yaml:"format"`
}

// LimitsConfig holds pagination bounds.
type LimitsConfig struct {
	// DefaultListLimit is used when a list request omits the limit.
	DefaultListLimit int `mapstructure:"default_list_limit" yaml:"default_list_limit"`
	// MaxListLimit caps the page size of a single list request.
	MaxListLimit int `mapstructure:"max_list_limit" yaml:"max_list_limit"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Dimensions: 128,
		Server: ServerConfig{
			Host:           "localhost",
			Port:           8080,
			RequestTimeout: 60 * time.Second,
			RateLimit:      0,
			RateBurst:      100,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Limits: LimitsConfig{
			DefaultListLimit: 50,
			MaxListLimit:     1000,
		},
	}
}

// Load reads configuration from the given file path (optional), the current
// directory, and VEXDB_* environment variables, layered over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/vexdb")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind environment variables
	_ = v.BindEnv("dimensions", "VEXDB_DIMENSIONS")
	_ = v.BindEnv("server.host", "VEXDB_HOST")
	_ = v.BindEnv("server.port", "VEXDB_PORT")
	_ = v.BindEnv("server.rate_limit", "VEXDB_RATE_LIMIT")
	_ = v.BindEnv("log.level", "VEXDB_LOG_LEVEL")
	_ = v.BindEnv("log.format", "VEXDB_LOG_FORMAT")

	// Read config file (ignore if not found unless a path was given)
	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if path != "" || !notFound {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Dimensions <= 0 {
		return fmt.Errorf("config: dimensions must be positive, got %d", c.Dimensions)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Server.Port)
	}
	if c.Limits.MaxListLimit <= 0 {
		return fmt.Errorf("config: max_list_limit must be positive, got %d", c.Limits.MaxListLimit)
	}
	if c.Limits.DefaultListLimit <= 0 || c.Limits.DefaultListLimit > c.Limits.MaxListLimit {
		return fmt.Errorf("config: default_list_limit must be in 1..%d, got %d",
			c.Limits.MaxListLimit, c.Limits.DefaultListLimit)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
}

// Addr returns the host:port bind address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
