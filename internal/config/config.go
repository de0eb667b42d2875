package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds Trolley's settings after defaults and overrides are applied.
type Config struct {
	DataDir     string
	Theme       string
	CatalogPath string
	LogLevel    slog.Level
}

const (
	defaultConfigPath = "~/.config/trolley/config.toml"
	defaultDataDir    = "~/.local/share/trolley"
	defaultTheme      = "Nightfox"
)

type fileConfig struct {
	DataDir     string `toml:"data_dir"`
	Theme       string `toml:"theme"`
	CatalogPath string `toml:"catalog_path"`
	LogLevel    string `toml:"log_level"`
}

type envConfig struct {
	DataDir     string `env:"TROLLEY_DATA_DIR"`
	Theme       string `env:"TROLLEY_THEME"`
	CatalogPath string `env:"TROLLEY_CATALOG"`
	LogLevel    string `env:"TROLLEY_LOG_LEVEL"`
}

// Load reads the config file at path (or the default location), applies
// TROLLEY_* environment overrides and fills in defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	raw, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}

	var overrides envConfig
	if err := env.Parse(&overrides); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	raw.DataDir = pick(overrides.DataDir, raw.DataDir)
	raw.Theme = pick(overrides.Theme, raw.Theme)
	raw.CatalogPath = pick(overrides.CatalogPath, raw.CatalogPath)
	raw.LogLevel = pick(overrides.LogLevel, raw.LogLevel)

	cfg := Config{
		DataDir: mustExpand(pick(raw.DataDir, defaultDataDir)),
		Theme:   pick(raw.Theme, defaultTheme),
	}
	if catalog := strings.TrimSpace(raw.CatalogPath); catalog != "" {
		cfg.CatalogPath = mustExpand(catalog)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("parse log_level: %w", err)
		}
	}
	return cfg, nil
}

// DBPath returns the key-value database location.
func (c Config) DBPath() string {
	return filepath.Join(c.dataDir(), "trolley.db")
}

// LogPath returns the structured log file location.
func (c Config) LogPath() string {
	return filepath.Join(c.dataDir(), "trolley.log")
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir)
	}
	return c.DataDir
}

func readFile(path string) (fileConfig, error) {
	var raw fileConfig
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return raw, nil
		}
		return raw, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return raw, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return raw, fmt.Errorf("parse config: %w", err)
	}
	return raw, nil
}

// pick returns the trimmed value, or fallback when value is blank.
func pick(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ to the home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
