package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planline/planline/internal/calendar"
	"github.com/planline/planline/internal/tui"
)

const starterRecords = `# planline records file.
# Each record needs a content line and at least one of start_time / time.
creator: %s
records:
  - record_id: "1"
    content: "Kick-off"
    project: "example"
    people: "you"
    start_time: "%s"
    time: "%s"
`

// NewInitCmd creates the init command, which writes a starter records
// file.
func NewInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Create a starter records file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ConfigFromCmd(cmd)
			if cfg == nil {
				return fmt.Errorf("configuration not loaded")
			}
			path := cfg.File
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				ok, err := tui.Confirm(fmt.Sprintf("%s already exists. Overwrite?", path), false)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}

			env := &Env{Config: cfg}
			today := todayDate()
			content := fmt.Sprintf(starterRecords, env.Identity(), today, today)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite without asking")
	return cmd
}

// todayDate formats today as a date literal for generated files.
func todayDate() string {
	return calendar.Format(calendar.Today())
}
