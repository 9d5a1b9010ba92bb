package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/planline/planline/internal/source"
	"github.com/planline/planline/internal/tui"
)

// NewViewCmd creates the view command, the interactive chart.
func NewViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the interactive timeline chart",
		Long: "view opens the two-pane timeline chart in the terminal. " +
			"Use the mouse wheel or +/- to zoom, drag or the arrow keys to pan.",
		Args: cobra.NoArgs,
		RunE: runView,
	}
}

// RunViewDefault runs the chart when planline is invoked with no
// subcommand.
func RunViewDefault(cmd *cobra.Command, args []string) error {
	return runView(cmd, args)
}

func runView(cmd *cobra.Command, _ []string) error {
	env, err := ResolveEnv(cmd)
	if err != nil {
		return err
	}

	var watcher *source.Watcher
	if env.Config.Watch {
		w, err := source.Watch(env.Config.File)
		if err == nil {
			watcher = w
			defer w.Close()
		}
		// A missing watch facility degrades to manual refresh.
	}

	saveState, err := env.SaveState()
	if err != nil {
		saveState = nil
	}

	app := tui.NewApp(tui.Config{
		Loader:    env.Loader,
		Identity:  env.Identity,
		State:     env.LoadState(),
		SaveState: saveState,
		Watcher:   watcher,
		Creator:   env.Source.Creator,
		Collation: env.Collation(),
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run chart: %w", err)
	}
	return nil
}
