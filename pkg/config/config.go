package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

const (
	xdgAppName      = "duke"
	configFile      = "config.json"
	dataFile        = "duke.txt"
	defaultCalendar = "Duke"
)

type Config struct {
	DataFile string `json:"data_file,omitempty"`
	Calendar string `json:"calendar,omitempty"`
}

// Home returns the directory holding Duke's config, tasks and tokens.
// $DUKE_PATH overrides the default ~/.config/duke.
func Home() (string, error) {
	if v := os.Getenv("DUKE_PATH"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	dir, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config at path. Comments and trailing commas are allowed.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		std, err := hujson.Standardize(b)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if err := json.Unmarshal(std, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) error {
	if cfg.Calendar == "" {
		cfg.Calendar = defaultCalendar
	}
	if cfg.DataFile == "" {
		dir, err := Home()
		if err != nil {
			return err
		}
		cfg.DataFile = filepath.Join(dir, dataFile)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
