package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings farmstand needs to reach the storefront.
type Config struct {
	BackendURL string
	Token      string
	TokenFile  string // when set, the token is read from and watched in this file
	LogFile    string
}

// Environment variables that override the config file.
const (
	EnvBackendURL = "FARMSTAND_BACKEND_URL"
	EnvToken      = "FARMSTAND_TOKEN"
)

const (
	defaultConfigPath = "~/.config/farmstand/config.toml"
	defaultLogFile    = "~/.local/state/farmstand/farmstand.log"
	defaultBackendURL = "http://127.0.0.1:5000"
)

// Overrides are values from the command line. Empty fields keep the value
// from the environment or the config file.
type Overrides struct {
	BackendURL string
	Token      string
	TokenFile  string
}

// Load locates and parses the farmstand config, falling back to defaults when
// missing. Environment variables then override file values.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{BackendURL: defaultBackendURL, LogFile: mustExpand(defaultLogFile)}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BackendURL string `toml:"backend_url"`
		Token      string `toml:"token"`
		TokenFile  string `toml:"token_file"`
		LogFile    string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BackendURL); v != "" {
		cfg.BackendURL = v
	}
	cfg.Token = strings.TrimSpace(raw.Token)
	if v := strings.TrimSpace(raw.TokenFile); v != "" {
		cfg.TokenFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	cfg.applyEnv()
	return cfg, nil
}

// Apply layers command-line overrides on top of c.
func (c Config) Apply(o Overrides) Config {
	if v := strings.TrimSpace(o.BackendURL); v != "" {
		c.BackendURL = v
	}
	if v := strings.TrimSpace(o.Token); v != "" {
		c.Token = v
	}
	if v := strings.TrimSpace(o.TokenFile); v != "" {
		c.TokenFile = mustExpand(v)
	}
	return c
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBackendURL)); v != "" {
		c.BackendURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		c.Token = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
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
