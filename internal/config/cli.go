package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// CLIConfig is the command-line client's settings file.
type CLIConfig struct {
	ServerURL string        `yaml:"server_url"`
	Timeout   time.Duration `yaml:"timeout"`
	ExportDir string        `yaml:"export_dir"`
	Storage   StorageConfig `yaml:"storage"`
}

type StorageConfig struct {
	Kind string `yaml:"kind"`
	DSN  string `yaml:"dsn,omitempty"`
}

// DefaultCLIConfig is written on first run.
func DefaultCLIConfig() CLIConfig {
	return CLIConfig{
		ServerURL: "http://localhost:8080",
		Timeout:   30 * time.Second,
		ExportDir: ".",
		Storage:   StorageConfig{Kind: "sqlite"},
	}
}

// CLIConfigPath resolves the settings file: explicit path, then
// ROASTER_CONFIG, then ~/.roaster/config.yaml.
func CLIConfigPath(override string) string {
	if override != "" {
		return expandPath(override)
	}
	if custom := os.Getenv("ROASTER_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".roaster", "config.yaml")
}

// LoadCLIConfig reads the settings file, creating it with defaults when it
// does not exist yet. Missing fields fall back to defaults.
func LoadCLIConfig(path string) (CLIConfig, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultCLIConfig()
			if err := SaveCLIConfig(path, cfg); err != nil {
				return CLIConfig{}, err
			}
			return cfg, nil
		}
		return CLIConfig{}, err
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, err
	}
	return hydrateCLIDefaults(cfg), nil
}

func SaveCLIConfig(path string, cfg CLIConfig) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func hydrateCLIDefaults(cfg CLIConfig) CLIConfig {
	def := DefaultCLIConfig()
	if cfg.ServerURL == "" {
		cfg.ServerURL = def.ServerURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = def.ExportDir
	}
	if cfg.Storage.Kind == "" {
		cfg.Storage.Kind = def.Storage.Kind
	}
	cfg.ExportDir = expandPath(cfg.ExportDir)
	return cfg
}

func expandPath(path string) string {
	if path == "~" {
		return userHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return path
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
