// Package commands implements the planline subcommands.
package commands

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/planline/planline/internal/blockstate"
	"github.com/planline/planline/internal/config"
	"github.com/planline/planline/internal/filter"
	"github.com/planline/planline/internal/layout"
	"github.com/planline/planline/internal/source"
)

// Env is the resolved runtime wiring shared by the subcommands.
type Env struct {
	Config *config.Config
	Source *source.FileSource
	Loader *source.Loader
}

// ResolveEnv builds the command environment from the loaded config.
func ResolveEnv(cmd *cobra.Command) (*Env, error) {
	cfg := ConfigFromCmd(cmd)
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	if cfg.File == "" {
		return nil, source.ErrNoSource
	}

	fs := source.NewFileSource(cfg.File)
	loader := source.NewLoader(fs, source.Query{Kind: "milestone"})
	if cfg.PageSize > 0 {
		loader.SetPageSize(cfg.PageSize)
	}

	return &Env{Config: cfg, Source: fs, Loader: loader}, nil
}

// Collation returns the configured or detected collation.
func (e *Env) Collation() *filter.Collation {
	if e.Config.Locale != "" {
		return filter.NewCollation(e.Config.Locale)
	}
	return filter.DetectCollation()
}

// Identity returns the name used for ownership checks: configured
// identity first, then the OS user.
func (e *Env) Identity() string {
	if e.Config.Identity != "" {
		return e.Config.Identity
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

// StatePath returns the state file for the records file, keyed by the
// absolute path so the same chart opened from different directories
// shares its state.
func (e *Env) StatePath() (string, error) {
	dir, err := config.StateDir()
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(e.Config.File)
	if err != nil {
		abs = e.Config.File
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(dir, hex.EncodeToString(sum[:8])+".json"), nil
}

// LoadState reads the persisted block state, falling back to defaults
// seeded from config.
func (e *Env) LoadState() blockstate.State {
	st := blockstate.Default()
	if mode, ok := layout.ParseViewMode(e.Config.View); ok {
		st.ViewMode = mode
	}

	path, err := e.StatePath()
	if err != nil {
		return st
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path derived from config
	if err != nil {
		return st
	}
	loaded, err := blockstate.Load(data)
	if err != nil {
		return st
	}
	return loaded
}

// SaveState writes the persisted block state next to its siblings under
// the user state dir.
func (e *Env) SaveState() (func([]byte) error, error) {
	path, err := e.StatePath()
	if err != nil {
		return nil, err
	}
	return func(data []byte) error {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o600)
	}, nil
}
