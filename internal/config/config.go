// Package config resolves runtime settings from defaults, an optional YAML
// file and DUETODAY_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid")

const (
	EnvConfigPath = "DUETODAY_CONFIG"

	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

type RuntimeConfig struct {
	StatePath            string `yaml:"state_path"`
	Store                string `yaml:"store"`
	SQLitePath           string `yaml:"sqlite_path"`
	LogFile              string `yaml:"log_file"`
	LogLevel             string `yaml:"log_level"`
	DesktopNotifications bool   `yaml:"desktop_notifications"`
	ProgressWidth        int    `yaml:"progress_width"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		StatePath:            "task_data.json",
		Store:                StoreJSON,
		SQLitePath:           "task_data.db",
		LogLevel:             "info",
		DesktopNotifications: false,
		ProgressWidth:        40,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("DUETODAY_STATE_FILE"); ok {
		cfg.StatePath = v
	}
	if v, ok := getEnvString("DUETODAY_STORE"); ok {
		cfg.Store = strings.ToLower(v)
	}
	if v, ok := getEnvString("DUETODAY_SQLITE_FILE"); ok {
		cfg.SQLitePath = v
	}
	if v, ok := getEnvString("DUETODAY_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("DUETODAY_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvBool("DUETODAY_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("DUETODAY_PROGRESS_WIDTH"); ok && v > 0 {
		cfg.ProgressWidth = v
	}
	return cfg
}

// DefaultPath is ~/.config/duetoday/config.yaml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "duetoday", "config.yaml")
}

// Load layers the config file and the environment over the defaults. An
// explicit path (argument or $DUETODAY_CONFIG) must exist; the default path
// may be absent.
func Load(explicitPath string) (RuntimeConfig, error) {
	path := strings.TrimSpace(explicitPath)
	if path == "" {
		path, _ = getEnvString(EnvConfigPath)
	}
	required := path != ""
	if !required {
		path = DefaultPath()
	}

	cfg := DefaultRuntimeConfig()
	if path != "" {
		next, err := LoadFile(path, cfg)
		switch {
		case err == nil:
			cfg = next
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return RuntimeConfig{}, err
		}
	}
	cfg = RuntimeConfigFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto base. Keys missing from the
// file keep their base values.
func LoadFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RuntimeConfig{}, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

func (c RuntimeConfig) Validate() error {
	switch c.Store {
	case StoreJSON:
		if strings.TrimSpace(c.StatePath) == "" {
			return fmt.Errorf("%w: state_path is empty", ErrInvalidConfig)
		}
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("%w: sqlite_path is empty", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: store must be %q or %q, got %q", ErrInvalidConfig, StoreJSON, StoreSQLite, c.Store)
	}
	if c.ProgressWidth <= 0 {
		return fmt.Errorf("%w: progress_width must be positive", ErrInvalidConfig)
	}
	return nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
