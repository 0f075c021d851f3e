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

// Config captures the fields fleetdeck reads from its config file.
type Config struct {
	APIBind   string // host:port or URL of the fleet-management backend
	Token     string // inline bearer token, overridden by the environment
	TokenPath string // file to read the token from when no inline token is set
	DebugLog  string // when set, gateway debug output is appended here
}

const (
	defaultConfigPath = "~/.config/fleetdeck/config.toml"
	defaultAPIBind    = "127.0.0.1:8780"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{APIBind: defaultAPIBind}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBind   string `toml:"api_bind"`
		Token     string `toml:"token"`
		TokenPath string `toml:"token_path"`
		DebugLog  string `toml:"debug_log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIBind = strings.TrimSpace(raw.APIBind)
	if cfg.APIBind == "" {
		cfg.APIBind = defaultAPIBind
	}
	cfg.Token = strings.TrimSpace(raw.Token)
	if tokenPath := strings.TrimSpace(raw.TokenPath); tokenPath != "" {
		cfg.TokenPath = mustExpand(tokenPath)
	}
	if debugLog := strings.TrimSpace(raw.DebugLog); debugLog != "" {
		cfg.DebugLog = mustExpand(debugLog)
	}

	return cfg, nil
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
