// Package config loads guts command and service settings with viper:
// defaults, then an optional config file, then GUTS_* environment variables,
// then bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/guts/internal/logging"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. GUTS_SERVER_PORT.
const EnvPrefix = "GUTS"

// Config represents the guts configuration.
type Config struct {
	// Schemas lists declaration documents loaded at startup.
	Schemas  []string     `mapstructure:"schemas"`
	LogLevel string       `mapstructure:"log_level"`
	Server   ServerConfig `mapstructure:"server"`
	Store    StoreConfig  `mapstructure:"store"`
	XML      XMLConfig    `mapstructure:"xml"`
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	Backend string      `mapstructure:"backend"` // memory, file or redis
	Path    string      `mapstructure:"path"`
	Redis   RedisConfig `mapstructure:"redis"`
	Redact  []string    `mapstructure:"redact"` // property name patterns masked before saving
}

// RedisConfig represents Redis connection settings.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// XMLConfig controls XML output.
type XMLConfig struct {
	Indent int  `mapstructure:"indent"`
	Header bool `mapstructure:"header"`
}

// New returns a viper instance with defaults and environment binding set.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("schemas", []string{})
	v.SetDefault("log_level", "info")
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.path", ".guts/documents")
	v.SetDefault("store.redact", []string{})
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "guts:doc:")
	v.SetDefault("store.redis.ttl", time.Duration(0))
	v.SetDefault("xml.indent", 0)
	v.SetDefault("xml.header", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration. When path is empty, guts.yaml (or .toml,
// .json) in the working directory is used if present.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("guts")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
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

// Validate checks enumerated and ranged settings.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("store.backend must be memory, file or redis, got %q", c.Store.Backend)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.XML.Indent < 0 {
		return fmt.Errorf("xml.indent must not be negative, got %d", c.XML.Indent)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	return logging.ParseLevel(c.LogLevel)
}
