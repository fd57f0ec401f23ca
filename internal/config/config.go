// Package config loads application configuration from an optional YAML file
// overlaid with environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// RemoteKind identifies which backend a remote URL selects.
type RemoteKind string

const (
	RemoteNone     RemoteKind = ""
	RemoteREST     RemoteKind = "rest"
	RemotePostgres RemoteKind = "postgres"
	RemoteSQLite   RemoteKind = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	DBPath         string       `yaml:"db_path"`
	Addr           string       `yaml:"addr"`
	AllowedOrigins []string     `yaml:"allowed_origins"`
	Remote         RemoteConfig `yaml:"remote"`
	Ack            AckConfig    `yaml:"ack"`
}

// RemoteConfig describes the optional remote note table. URL and Key must
// both be set for the remote to be used.
type RemoteConfig struct {
	URL   string `yaml:"url"`
	Key   string `yaml:"key"`
	Table string `yaml:"table"`
}

// AckConfig controls save acknowledgements.
type AckConfig struct {
	DurationMs int  `yaml:"duration_ms"`
	Supersede  bool `yaml:"supersede"`
}

const (
	defaultTable = "polaris_persistence"
	defaultAddr  = ":8080"
	defaultAckMs = 3000
)

// DefaultConfig returns a Config with defaults under home.
func DefaultConfig(home string) *Config {
	return &Config{
		DBPath:         filepath.Join(home, ".polaris", "polaris.db"),
		Addr:           defaultAddr,
		AllowedOrigins: []string{"*"},
		Remote:         RemoteConfig{Table: defaultTable},
		Ack:            AckConfig{DurationMs: defaultAckMs},
	}
}

// DefaultPath is the config file consulted when POLARIS_CONFIG is unset.
func DefaultPath(home string) string {
	return filepath.Join(home, ".polaris", "config.yaml")
}

// Load builds the configuration: defaults, then the YAML file named by
// POLARIS_CONFIG (or the default path if it exists), then environment
// variables.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	cfg := DefaultConfig(home)

	path, explicit := os.LookupEnv("POLARIS_CONFIG")
	if !explicit || path == "" {
		path, explicit = DefaultPath(home), false
	}
	if err := mergeFile(cfg, path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// WriteFile writes cfg as YAML, creating the parent directory.
func WriteFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.DBPath = getEnv("POLARIS_DB", cfg.DBPath)
	cfg.Addr = getEnv("POLARIS_ADDR", cfg.Addr)
	if v := getEnv("POLARIS_ALLOWED_ORIGINS", ""); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	cfg.Remote.URL = getEnv("POLARIS_REMOTE_URL", getEnv("SUPABASE_URL", cfg.Remote.URL))
	cfg.Remote.Key = getEnv("POLARIS_REMOTE_KEY", getEnv("SUPABASE_ANON_KEY", cfg.Remote.Key))
	cfg.Remote.Table = getEnv("POLARIS_REMOTE_TABLE", cfg.Remote.Table)
	cfg.Ack.DurationMs = getEnvInt("POLARIS_ACK_MS", cfg.Ack.DurationMs)
	cfg.Ack.Supersede = getEnvBool("POLARIS_ACK_SUPERSEDE", cfg.Ack.Supersede)
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("POLARIS_DB cannot be empty")
	}
	if c.Addr == "" {
		return fmt.Errorf("POLARIS_ADDR cannot be empty")
	}
	if c.Ack.DurationMs <= 0 {
		return fmt.Errorf("POLARIS_ACK_MS must be > 0")
	}
	if c.Remote.Table == "" {
		c.Remote.Table = defaultTable
	}
	return nil
}

// AckDuration returns the acknowledgement duration.
func (c *Config) AckDuration() time.Duration {
	return time.Duration(c.Ack.DurationMs) * time.Millisecond
}

// RemoteConfigured reports whether both remote URL and key are present.
func (c *Config) RemoteConfigured() bool {
	return c.Remote.URL != "" && c.Remote.Key != ""
}

// RemoteKind classifies the remote URL by scheme.
func (c *Config) RemoteKind() RemoteKind {
	u, err := url.Parse(c.Remote.URL)
	if err != nil {
		return RemoteNone
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return RemoteREST
	case "postgres", "postgresql":
		return RemotePostgres
	case "sqlite", "file":
		return RemoteSQLite
	default:
		return RemoteNone
	}
}

// RemoteDSN returns the driver DSN for SQL remotes. For Postgres the key is
// used as the password when the URL carries none. For SQLite the path
// after the scheme is the database file.
func (c *Config) RemoteDSN() string {
	u, err := url.Parse(c.Remote.URL)
	if err != nil {
		return c.Remote.URL
	}
	switch c.RemoteKind() {
	case RemotePostgres:
		if u.User != nil {
			if _, has := u.User.Password(); !has {
				u.User = url.UserPassword(u.User.Username(), c.Remote.Key)
			}
		}
		return u.String()
	case RemoteSQLite:
		return u.Host + u.Path
	default:
		return c.Remote.URL
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
