package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// maxRecentSources caps AppConfig.RecentSources
const maxRecentSources = 5

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	DefaultSource    string   `json:"default_source,omitempty"`
	AccentColor      string   `json:"accent_color,omitempty"`
	PlaceholderTitle string   `json:"placeholder_title,omitempty"`
	RecentSources    []string `json:"recent_sources,omitempty"`
}

// RememberSource moves source to the front of RecentSources, dropping any
// older copy and the oldest entries past the cap.
func (c *AppConfig) RememberSource(source string) {
	if source == "" {
		return
	}

	recent := []string{source}
	for _, s := range c.RecentSources {
		if s != source && len(recent) < maxRecentSources {
			recent = append(recent, s)
		}
	}
	c.RecentSources = recent
}

// getConfigPath returns the absolute path to ~/.courseplanner.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".courseplanner.json"), nil
}

// CacheDir returns the directory remote catalogs are cached in,
// ~/.courseplanner_cache
func CacheDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".courseplanner_cache"), nil
}

// Load reads the application configuration from disk.
// Returns an empty struct if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
