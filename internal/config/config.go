// Package config provides layered configuration loading.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the resolved configuration.
type Config struct {
	// File is the records file the chart reads from.
	File string `json:"file"`

	// Identity is the name used for block-state ownership checks.
	Identity string `json:"identity"`

	// Locale overrides the collation locale detected from the environment.
	Locale string `json:"locale"`

	// View is the default grouping axis ("project" or "person").
	View string `json:"view"`

	// PageSize is the record fetch page size.
	PageSize int `json:"page_size"`

	// Watch controls whether the chart follows records-file changes.
	Watch bool `json:"watch"`

	// Sources tracks where each value came from (for debugging).
	Sources map[string]string `json:"-"`
}

// Source indicates where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceGlobal  Source = "global"
	SourceLocal   Source = "local"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// FlagOverrides holds command-line flag values.
type FlagOverrides struct {
	File   string
	Locale string
	View   string
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		File:     "planline.yaml",
		View:     "project",
		PageSize: 200,
		Watch:    true,
		Sources:  make(map[string]string),
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence: flags > env > local > global > defaults
func Load(overrides FlagOverrides) (*Config, error) {
	cfg := Default()

	loadFromFile(cfg, globalConfigPath(), SourceGlobal)
	loadFromFile(cfg, localConfigPath(), SourceLocal)

	LoadFromEnv(cfg)
	ApplyOverrides(cfg, overrides)

	return cfg, nil
}

func loadFromFile(cfg *Config, path string, source Source) {
	if path == "" {
		return
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is from trusted config locations
	if err != nil {
		return // File doesn't exist, skip
	}

	var fileCfg map[string]any
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: skipping malformed config at %s: %v\n", path, err)
		return
	}

	if v, ok := fileCfg["file"].(string); ok && v != "" {
		// Relative records paths in a config file resolve against that file.
		if !filepath.IsAbs(v) && source == SourceLocal {
			v = filepath.Join(filepath.Dir(path), v)
		}
		cfg.File = v
		cfg.Sources["file"] = string(source)
	}
	if v, ok := fileCfg["identity"].(string); ok && v != "" {
		cfg.Identity = v
		cfg.Sources["identity"] = string(source)
	}
	if v, ok := fileCfg["locale"].(string); ok && v != "" {
		cfg.Locale = v
		cfg.Sources["locale"] = string(source)
	}
	if v, ok := fileCfg["view"].(string); ok && v != "" {
		cfg.View = v
		cfg.Sources["view"] = string(source)
	}
	if v, ok := fileCfg["page_size"].(float64); ok {
		if iv := int(v); iv > 0 && v == float64(iv) {
			cfg.PageSize = iv
			cfg.Sources["page_size"] = string(source)
		}
	}
	if v, ok := fileCfg["watch"].(bool); ok {
		cfg.Watch = v
		cfg.Sources["watch"] = string(source)
	}
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("PLANLINE_FILE"); v != "" {
		cfg.File = v
		cfg.Sources["file"] = string(SourceEnv)
	}
	if v := os.Getenv("PLANLINE_IDENTITY"); v != "" {
		cfg.Identity = v
		cfg.Sources["identity"] = string(SourceEnv)
	}
	if v := os.Getenv("PLANLINE_LOCALE"); v != "" {
		cfg.Locale = v
		cfg.Sources["locale"] = string(SourceEnv)
	}
	if v := os.Getenv("PLANLINE_VIEW"); v != "" {
		cfg.View = v
		cfg.Sources["view"] = string(SourceEnv)
	}
	if v := os.Getenv("PLANLINE_WATCH"); v != "" {
		if b, ok := parseEnvBool(v); ok {
			cfg.Watch = b
			cfg.Sources["watch"] = string(SourceEnv)
		}
	}
}

// ApplyOverrides applies non-empty flag overrides to cfg.
func ApplyOverrides(cfg *Config, o FlagOverrides) {
	if o.File != "" {
		cfg.File = o.File
		cfg.Sources["file"] = string(SourceFlag)
	}
	if o.Locale != "" {
		cfg.Locale = o.Locale
		cfg.Sources["locale"] = string(SourceFlag)
	}
	if o.View != "" {
		cfg.View = o.View
		cfg.Sources["view"] = string(SourceFlag)
	}
}

// parseEnvBool parses a boolean environment variable strictly.
// Unrecognized values are ignored rather than treated as false.
func parseEnvBool(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}

func globalConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "planline", "config.json")
}

func localConfigPath() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, ".planline.json")
}

// StateDir returns the directory where per-block chart state lives.
func StateDir() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "planline"), nil
}
