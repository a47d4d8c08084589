// Package config resolves client settings from the environment and the
// config file at ~/.config/taskdeck/config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the global taskdeck config stored at ~/.config/taskdeck/config.json.
type Config struct {
	ServerURL string `json:"server_url,omitempty"`
	Timeout   string `json:"timeout,omitempty"` // duration string, default "30s"
}

const defaultServerURL = "http://localhost:8080/api"

// Dir returns the taskdeck config directory, creating it if necessary.
// TASKDECK_CONFIG_DIR overrides the default for tests and sandboxes.
func Dir() (string, error) {
	if v := os.Getenv("TASKDECK_CONFIG_DIR"); v != "" {
		if err := os.MkdirAll(v, 0755); err != nil {
			return "", fmt.Errorf("create config dir: %w", err)
		}
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	dir := filepath.Join(home, ".config", "taskdeck")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// Load reads the global config, returning an empty config when the file
// does not exist.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the global config.
func Save(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// ServerURL returns the API base URL.
// Priority: TASKDECK_SERVER_URL env > config.json > default.
func ServerURL() string {
	if v := os.Getenv("TASKDECK_SERVER_URL"); v != "" {
		return v
	}
	cfg, err := Load()
	if err == nil && cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return defaultServerURL
}

// Timeout returns the HTTP request timeout.
// Priority: TASKDECK_TIMEOUT env > config.json > 30s.
func Timeout() time.Duration {
	if v := os.Getenv("TASKDECK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	cfg, err := Load()
	if err == nil && cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil && d > 0 {
			return d
		}
	}
	return 30 * time.Second
}
