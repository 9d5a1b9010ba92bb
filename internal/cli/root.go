// Package cli assembles the planline command tree.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planline/planline/internal/commands"
	"github.com/planline/planline/internal/config"
	"github.com/planline/planline/internal/version"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	var flags config.FlagOverrides

	cmd := &cobra.Command{
		Use:           "planline",
		Short:         "Two-pane timeline charts from plain records",
		Long:          "planline renders date-spanning records as an interactive two-pane timeline chart, grouped by project or by person.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          commands.RunViewDefault, // Open the chart when no args
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load(flags)
			if err != nil {
				return err
			}
			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg))
			return nil
		},
	}

	cmd.Flags().SetInterspersed(true)
	cmd.PersistentFlags().SetInterspersed(true)

	cmd.PersistentFlags().StringVarP(&flags.File, "file", "f", "", "Records file (YAML)")
	cmd.PersistentFlags().StringVar(&flags.Locale, "locale", "", "Collation locale (e.g. en-US, sv-SE)")
	cmd.PersistentFlags().StringVar(&flags.View, "view", "", "Default grouping axis: project or person")

	return cmd
}

// Execute runs the root command.
func Execute() {
	cmd := NewRootCmd()

	cmd.AddCommand(commands.NewViewCmd())
	cmd.AddCommand(commands.NewExportCmd())
	cmd.AddCommand(commands.NewRecordsCmd())
	cmd.AddCommand(commands.NewInitCmd())
	cmd.AddCommand(commands.NewVersionCmd())

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "planline: %s\n", transformCobraError(err))
		os.Exit(1)
	}
}

// transformCobraError rewrites cobra's flag errors into the house
// style.
func transformCobraError(err error) string {
	msg := err.Error()

	if flag, ok := strings.CutPrefix(msg, "flag needs an argument: "); ok {
		return flag + " requires a value"
	}
	if flag, ok := strings.CutPrefix(msg, "unknown flag: "); ok {
		return "unknown option: " + flag
	}
	return msg
}
