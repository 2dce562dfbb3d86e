// Package config persists frontend-level settings that outlive a single
// Session: per-core option overrides and the directories handed back for
// GET_SYSTEM_DIRECTORY/GET_SAVE_DIRECTORY/GET_CONTENT_DIRECTORY. Grounded on the
// atomic-write JSON pattern used elsewhere in this stack's storage layer.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

var appName = "retrohost"

// SetAppName overrides the application directory name GetBaseDir derives
// paths from. Call before any other function in this package.
func SetAppName(name string) {
	appName = name
}

// Config is the on-disk frontend configuration.
type Config struct {
	Version int `json:"version"`

	SystemDirectory  string `json:"systemDirectory"`
	SaveDirectory    string `json:"saveDirectory"`
	ContentDirectory string `json:"contentDirectory"`

	Video VideoConfig `json:"video"`
	Audio AudioConfig `json:"audio"`

	// CoreOptions holds per-core saved option values: core library name ->
	// option key -> value, matching abi.Variable's (key, value) shape.
	CoreOptions map[string]map[string]string `json:"coreOptions"`
}

// VideoConfig holds video driver defaults applied before a core negotiates
// its own pixel format and geometry.
type VideoConfig struct {
	PreferredHWContext int  `json:"preferredHWContext"`
	VSync              bool `json:"vsync"`
}

// AudioConfig holds audio driver defaults.
type AudioConfig struct {
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
}

// DefaultConfig returns a Config with the defaults a fresh install gets.
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		Audio:       AudioConfig{Volume: 1.0},
		CoreOptions: make(map[string]map[string]string),
	}
}

const configFile = "config.json"

// GetBaseDir returns the OS-appropriate application data directory.
func GetBaseDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: home directory: %w", err)
		}
		baseDir = filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("config: APPDATA not set")
		}
		baseDir = filepath.Join(appData, appName)
	default:
		if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
			baseDir = filepath.Join(dataHome, appName)
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("config: home directory: %w", err)
			}
			baseDir = filepath.Join(home, ".local", "share", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to config.json.
func GetConfigPath() (string, error) {
	baseDir, err := GetBaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, configFile), nil
}

// Load reads config.json, returning DefaultConfig if it doesn't exist yet.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	cfg := &Config{}
	if err := ReadJSON(path, cfg); err != nil {
		return nil, err
	}
	if cfg.CoreOptions == nil {
		cfg.CoreOptions = make(map[string]map[string]string)
	}
	return cfg, nil
}

// Save atomically writes cfg to config.json.
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return AtomicWriteJSON(path, cfg)
}

// AtomicWriteJSON writes data to path via a temp-file-then-rename so a
// crash mid-write never leaves a truncated config file behind.
func AtomicWriteJSON(path string, data interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, jsonData, 0644); err != nil {
		return fmt.Errorf("config: write temp file: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("config: rename temp file: %w", err)
	}

	return nil
}

// ReadJSON reads and unmarshals path into data.
func ReadJSON(path string, data interface{}) error {
	jsonData, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(jsonData, data); err != nil {
		return fmt.Errorf("config: parse: %w", err)
	}
	return nil
}

// OptionsFor returns the saved option key/value pairs for a core, by its
// retro_system_info library name, or nil if none are saved.
func (c *Config) OptionsFor(libraryName string) map[string]string {
	return c.CoreOptions[libraryName]
}

// SetOption records one option value for a core, creating its map entry if
// this is the first saved option for that core.
func (c *Config) SetOption(libraryName, key, value string) {
	if c.CoreOptions == nil {
		c.CoreOptions = make(map[string]map[string]string)
	}
	opts, ok := c.CoreOptions[libraryName]
	if !ok {
		opts = make(map[string]string)
		c.CoreOptions[libraryName] = opts
	}
	opts[key] = value
}
