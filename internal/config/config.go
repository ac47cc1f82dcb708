// Package config loads and normalises UI server configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	defaultAddr   = "127.0.0.1"
	defaultPort   = ":4173"
	defaultAssets = "ui"
	defaultShell  = "index.html"
	defaultLevel  = "INFO"

	// EnvPrefix namespaces every environment override.
	EnvPrefix = "MENU_RESTORE_"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `json:"addr" env:"ADDR"`
	Port string `json:"port" env:"PORT"`
}

// ListenAddr joins Addr and Port.
func (s ServerConfig) ListenAddr() string {
	port := s.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	return s.Addr + port
}

// AppConfig locates the static assets and the HTML shell.
type AppConfig struct {
	Assets string `json:"assets" env:"ASSETS"`
	Shell  string `json:"shell" env:"SHELL_FILE"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `json:"level" env:"LEVEL"`
}

// Config represents the combined runtime settings.
type Config struct {
	Server ServerConfig `json:"server" envPrefix:"SERVER_"`
	App    AppConfig    `json:"app" envPrefix:"APP_"`
	Log    LogConfig    `json:"log" envPrefix:"LOG_"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: defaultAddr, Port: defaultPort},
		App:    AppConfig{Assets: defaultAssets, Shell: defaultShell},
		Log:    LogConfig{Level: defaultLevel},
	}
}

// Load reads the JSON config at path, when one is given, then applies
// MENU_RESTORE_* environment overrides. A missing file at the given path is
// an error; an empty path means defaults plus environment only.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		var raw Config
		if err := json.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("decode config: %w", err)
		}
		cfg = merge(cfg, raw)
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv applies environment overrides to target.
func ParseEnv(target *Config) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Port) == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if strings.TrimSpace(c.App.Assets) == "" {
		errs = append(errs, errors.New("app.assets is required"))
	}
	if strings.TrimSpace(c.App.Shell) == "" {
		errs = append(errs, errors.New("app.shell is required"))
	}
	return errors.Join(errs...)
}

func merge(base, over Config) Config {
	if over.Server.Addr != "" {
		base.Server.Addr = over.Server.Addr
	}
	if over.Server.Port != "" {
		base.Server.Port = over.Server.Port
	}
	if over.App.Assets != "" {
		base.App.Assets = over.App.Assets
	}
	if over.App.Shell != "" {
		base.App.Shell = over.App.Shell
	}
	if over.Log.Level != "" {
		base.Log.Level = over.Log.Level
	}
	return base
}
