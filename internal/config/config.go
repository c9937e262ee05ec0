package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config represents the user's configuration
type Config struct {
	DefaultVariant string            `json:"default_variant,omitempty"` // Applied to fields that set none
	Debug          bool              `json:"debug"`
	LogFile        string            `json:"log_file,omitempty"`
	LastValues     map[string]string `json:"last_values,omitempty"` // Prefills fields by name
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LastValues: map[string]string{},
	}
}

// globalConfigDir returns the global config directory path (~/.inputkit)
func globalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".inputkit"), nil
}

// globalConfigPath returns the global config file path (~/.inputkit/config.json)
func globalConfigPath() (string, error) {
	dir, err := globalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// projectConfigPath returns the project-level config path (.inputkit/config.json in cwd)
func projectConfigPath() string {
	return filepath.Join(".inputkit", "config.json")
}

// DefaultLogPath returns the log file used when none is configured (~/.inputkit/logs/inputkit.log)
func DefaultLogPath() (string, error) {
	dir, err := globalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "inputkit.log"), nil
}

// Exists checks if a config file exists (project or global)
func Exists() bool {
	// Check project config first
	if _, err := os.Stat(projectConfigPath()); err == nil {
		return true
	}
	// Check global config
	path, err := globalConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config from disk, checking project config first, then global
func Load() (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(projectConfigPath(), globalPath)
}

// LoadFrom reads projectPath if present, else globalPath.
// A missing global file yields the default config.
func LoadFrom(projectPath, globalPath string) (*Config, error) {
	if data, err := os.ReadFile(projectPath); err == nil {
		return decode(data)
	}

	data, err := os.ReadFile(globalPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config exists, return default (don't auto-create)
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return decode(data)
}

func decode(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.LastValues == nil {
		cfg.LastValues = map[string]string{}
	}
	return cfg, nil
}

// Save writes the config to both project and global locations
func Save(cfg *Config) error {
	// If project save fails (e.g., no write permission), continue to global
	_ = SaveTo(projectConfigPath(), cfg)

	path, err := globalConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes the config to path, creating its directory
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
