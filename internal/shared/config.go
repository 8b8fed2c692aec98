package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Backend  BackendConfig  `toml:"backend"`
	Database DatabaseConfig `toml:"database"`
	Upload   UploadConfig   `toml:"upload"`
}

// BackendConfig contains pipeline backend settings.
type BackendConfig struct {
	BaseURL        string  `toml:"base_url"`
	RequestTimeout int     `toml:"request_timeout_seconds"`
	PollInterval   int     `toml:"poll_interval_seconds"`
	RateLimit      float64 `toml:"rate_limit"` // requests per second
	RateLimitBurst int     `toml:"rate_limit_burst"`
}

// DatabaseConfig contains local cache database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// UploadConfig contains client-side upload validation settings.
type UploadConfig struct {
	AllowedExtensions []string `toml:"allowed_extensions"`
	MaxSizeMB         int64    `toml:"max_size_mb"`
}

// PollIntervalDuration returns the snapshot polling interval as a duration.
func (b BackendConfig) PollIntervalDuration() time.Duration {
	if b.PollInterval <= 0 {
		return 5 * time.Second
	}
	return time.Duration(b.PollInterval) * time.Second
}

// RequestTimeoutDuration returns the per-request timeout as a duration.
func (b BackendConfig) RequestTimeoutDuration() time.Duration {
	if b.RequestTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.RequestTimeout) * time.Second
}

// AllowsExtension reports whether a filename passes the upload allow-list.
// Matching is case-insensitive on the extension, dot included.
func (u UploadConfig) AllowsExtension(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range u.AllowedExtensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
