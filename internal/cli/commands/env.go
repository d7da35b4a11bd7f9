package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nightrabbit666/workassist/internal/config"
	"github.com/nightrabbit666/workassist/pkg/netguard"
	"github.com/nightrabbit666/workassist/pkg/workassist"
)

// Env is what every command works from: the project directory, its
// configuration and a logger.
type Env struct {
	Root   string
	Config config.Config
	Logger *slog.Logger
}

// LoadEnv reads the configuration of the current directory. Headless
// commands log to stderr.
func LoadEnv(cmd *cobra.Command) (Env, error) {
	root, err := os.Getwd()
	if err != nil {
		return Env{}, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return Env{}, err
	}
	if f := cmd.Flag("url"); f != nil && f.Changed {
		cfg.BaseURL = strings.TrimRight(f.Value.String(), "/")
		if err := netguard.CheckBaseURL(cfg.BaseURL); err != nil {
			return Env{}, err
		}
	}
	env := Env{
		Root:   root,
		Config: cfg,
		Logger: NewLogger(cmd.ErrOrStderr(), cfg.SlogLevel()),
	}
	env.WarnInsecure()
	return env, nil
}

// WarnInsecure logs when the session cookie would travel over plain http to
// another machine.
func (e Env) WarnInsecure() {
	if e.Config.SessionCookie != "" && netguard.InsecureSession(e.Config.BaseURL) {
		e.Logger.Warn("session cookie will be sent unencrypted", "base_url", e.Config.BaseURL)
	}
}

// Client builds a backend client from the configuration.
func (e Env) Client() *workassist.Client {
	return workassist.NewClient(e.Config.BaseURL).
		WithTimeout(e.Timeout()).
		WithSession(e.Config.SessionCookie)
}

// Timeout bounds one backend call.
func (e Env) Timeout() time.Duration {
	if d := e.Config.Timeout.Duration; d > 0 {
		return d
	}
	return 2 * time.Minute
}

// NewLogger returns a text logger at level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// OpenLogFile opens path for appending, creating its directory.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}
