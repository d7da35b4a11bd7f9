package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nightrabbit666/workassist/pkg/netguard"
)

type Config struct {
	BaseURL       string   `toml:"base_url"`
	Timeout       Duration `toml:"timeout"`
	SessionCookie string   `toml:"session_cookie"`
	LogLevel      string   `toml:"log_level"`
	DataDir       string   `toml:"data_dir"`
	DefaultMode   string   `toml:"default_mode"`
	Features      Features `toml:"features"`
}

// Features are the default toggles offered in the save form.
type Features struct {
	Daily   bool `toml:"daily"`
	Monthly bool `toml:"monthly"`
	Debug   bool `toml:"debug"`
}

// Duration decodes TOML strings such as "90s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

const ProjectDir = ".workassist"

const (
	EnvURL     = "WORKASSIST_URL"
	EnvSession = "WORKASSIST_SESSION"
)

const DefaultConfigToml = `# workassist configuration

base_url = "http://127.0.0.1:5000"
timeout = "2m"
log_level = "info"
default_mode = "one_shot"
# session_cookie = ""
# data_dir = ""

[features]
daily = false
monthly = false
debug = false
`

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	_, _ = toml.Decode(DefaultConfigToml, &cfg)
	return cfg
}

// Load reads the project config under root, falling back to the user-level
// config, then to the defaults. Environment variables override the URL and
// session cookie.
func Load(root string) (Config, error) {
	cfg := Default()
	for _, path := range []string{userConfigPath(), ProjectConfigPath(root)} {
		if path == "" {
			continue
		}
		if err := mergeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if v := os.Getenv(EnvURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvSession); v != "" {
		cfg.SessionCookie = v
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir(root)
	}
	if cfg.BaseURL == "" {
		return Config{}, errors.New("config: base_url is empty")
	}
	if err := netguard.CheckBaseURL(cfg.BaseURL); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func mergeFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := toml.Decode(string(raw), cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// ProjectConfigPath returns the config file of the project at root.
func ProjectConfigPath(root string) string {
	return filepath.Join(root, ProjectDir, "config.toml")
}

func userConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "workassist", "config.toml")
}

func defaultDataDir(root string) string {
	return filepath.Join(root, ProjectDir)
}

// EnsureInitialized writes the default config under root if none exists.
func EnsureInitialized(root string) (bool, error) {
	path := ProjectConfigPath(root)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(DefaultConfigToml), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// SlogLevel maps log_level to a slog level; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogPath is where the TUI writes its log while it owns the terminal.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "workassist.log")
}

// HistoryPath is the local database of created projects.
func (c Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "history.db")
}
