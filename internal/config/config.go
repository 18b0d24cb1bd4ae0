// Package config loads and persists the client-side settings of
// wardenctl: which server to talk to, the admin token, and ambient
// behavior like logging. Server-side configuration lives behind the
// admin API and is never stored here.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Config holds the client settings.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Audit   AuditConfig   `mapstructure:"audit" yaml:"audit"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ServerConfig identifies the backend admin API.
type ServerConfig struct {
	URL   string `mapstructure:"url" yaml:"url"`
	Token string `mapstructure:"token" yaml:"token"`
}

// LogConfig configures client logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AuditConfig configures the local command audit log.
type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// Default returns the default client configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:8000",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Audit: AuditConfig{
			Enabled: true,
			Path:    defaultAuditPath(),
		},
		Timeout: 30 * time.Second,
	}
}

// Validate checks the loaded settings.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("server.url %q is not an http(s) URL", c.Server.URL)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("log.format %q: want auto, text or json", c.Log.Format)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// Dir returns the per-user configuration directory.
func Dir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "wardenctl")
	}
	return "."
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func defaultAuditPath() string {
	return filepath.Join(Dir(), "audit.db")
}
