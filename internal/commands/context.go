package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/planline/planline/internal/config"
)

// contextKey is a private type for context keys.
type contextKey string

const configKey contextKey = "config"

// WithConfig stores the resolved config on a context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// ConfigFromCmd retrieves the resolved config from a command's context,
// or nil if the root command has not loaded one.
func ConfigFromCmd(cmd *cobra.Command) *config.Config {
	cfg, _ := cmd.Context().Value(configKey).(*config.Config)
	return cfg
}
