package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the vkperm configuration
type Config struct {
	// GroupsFilePath is the path to the YAML group definitions file
	GroupsFilePath string `json:"groups_file_path"`

	// PlayerDirPath is the path to the player files directory
	PlayerDirPath string `json:"player_dir_path"`

	// PlayerCacheTime is how long to cache player records (seconds)
	PlayerCacheTime int `json:"player_cache_time"`

	// StatusDir is where watch mode writes status files; empty disables it
	StatusDir string `json:"status_dir,omitempty"`

	// StatusInterval is the status heartbeat interval in seconds
	StatusInterval int `json:"status_interval,omitempty"`

	// LogPath is the application log file; empty logs to stderr
	LogPath string `json:"log_path,omitempty"`

	// Debug enables debug logging
	Debug bool `json:"debug,omitempty"`
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if config.GroupsFilePath == "" {
		return fmt.Errorf("groups_file_path is required")
	}

	// Convert relative paths to absolute paths based on config file location
	configDir := filepath.Dir(path)
	if !filepath.IsAbs(config.GroupsFilePath) {
		config.GroupsFilePath = filepath.Join(configDir, config.GroupsFilePath)
	}
	if config.PlayerDirPath != "" && !filepath.IsAbs(config.PlayerDirPath) {
		config.PlayerDirPath = filepath.Join(configDir, config.PlayerDirPath)
	}
	if config.StatusDir != "" && !filepath.IsAbs(config.StatusDir) {
		config.StatusDir = filepath.Join(configDir, config.StatusDir)
	}
	if config.LogPath != "" && !filepath.IsAbs(config.LogPath) {
		config.LogPath = filepath.Join(configDir, config.LogPath)
	}

	// Defaults for optional settings
	if config.PlayerCacheTime == 0 {
		config.PlayerCacheTime = 60 // 1 minute
	}
	if config.StatusInterval == 0 {
		config.StatusInterval = 30
	}

	return nil
}
