// Package config provides configuration management for colbuild.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/ini.v1"
)

// Config holds the client settings shared by every command.
//
// Config file location:
//   - Windows: %USERPROFILE%\.config\colbuild\config
//   - Unix: ~/.config/colbuild/config
//
// INI format:
//
//	[colbuilder]
//	server_url = https://colbuilder.example.org
//
//	[colbuild.session]
//	cookie_file = ~/.config/colbuild/session
//	remember = true
type Config struct {
	// ServerURL is the base URL of the Colbuilder backend.
	ServerURL string `ini:"server_url"`

	// Session settings
	Session SessionConfig
}

// SessionConfig contains settings for the persisted login session.
type SessionConfig struct {
	// CookieFile is where the server session cookie is persisted so a
	// login survives across invocations. Empty means the default path.
	CookieFile string `ini:"cookie_file"`

	// Remember asks the server for a long-lived session on login.
	// Default: true
	Remember bool `ini:"remember"`
}

// Validation errors
var (
	ErrMissingServerURL = errors.New("server_url is required")
)

// DefaultConfigDir returns the colbuild config directory.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", errors.New("USERPROFILE environment variable not set")
		}
		return filepath.Join(userProfile, ".config", "colbuild"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "colbuild"), nil
}

// DefaultConfigPath returns the default path for the config file.
func DefaultConfigPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config"), nil
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		ServerURL: "http://localhost:5000",
		Session: SessionConfig{
			Remember: true,
		},
	}
}

// Load loads configuration from an INI file. If the file doesn't exist,
// returns a config with default values and no error. If the file exists but
// is invalid, returns an error.
func Load(path string) (*Config, error) {
	cfg := New()

	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return cfg, nil // Fall back to defaults if we can't determine the path
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	serverSection := iniFile.Section("colbuilder")
	cfg.ServerURL = serverSection.Key("server_url").MustString(cfg.ServerURL)

	sessionSection := iniFile.Section("colbuild.session")
	cfg.Session.CookieFile = sessionSection.Key("cookie_file").String()
	cfg.Session.Remember = sessionSection.Key("remember").MustBool(true)

	return cfg, nil
}

// Save saves configuration to an INI file, creating parent directories as
// needed. Uses a temporary file + rename for atomicity.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to determine config path: %w", err)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	iniFile := ini.Empty()

	serverSection, err := iniFile.NewSection("colbuilder")
	if err != nil {
		return fmt.Errorf("failed to create colbuilder section: %w", err)
	}
	serverSection.Key("server_url").SetValue(cfg.ServerURL)

	sessionSection, err := iniFile.NewSection("colbuild.session")
	if err != nil {
		return fmt.Errorf("failed to create session section: %w", err)
	}
	sessionSection.Key("cookie_file").SetValue(cfg.Session.CookieFile)
	sessionSection.Key("remember").SetValue(fmt.Sprintf("%t", cfg.Session.Remember))

	tmpPath := path + ".tmp"
	if err := iniFile.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmpPath, 0600); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("failed to set config permissions: %w", err)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Validate checks whether the configuration can reach a backend.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.ServerURL) == "" {
		return ErrMissingServerURL
	}
	return nil
}

// CookieFilePath resolves the session cookie file path, falling back to the
// default location next to the config file.
func (cfg *Config) CookieFilePath() (string, error) {
	if cfg.Session.CookieFile != "" {
		return cfg.Session.CookieFile, nil
	}
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session"), nil
}
