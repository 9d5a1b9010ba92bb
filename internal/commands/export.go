package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planline/planline/internal/calendar"
	"github.com/planline/planline/internal/chart"
	"github.com/planline/planline/internal/filter"
	"github.com/planline/planline/internal/layout"
	"github.com/planline/planline/internal/milestone"
	"github.com/planline/planline/internal/panzoom"
	"github.com/planline/planline/internal/tui"
)

// NewExportCmd creates the export command, which renders the chart to
// an SVG document.
func NewExportCmd() *cobra.Command {
	var (
		output   string
		viewFlag string
		dayWidth int
		projects []string
		people   []string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the timeline chart to SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := ResolveEnv(cmd)
			if err != nil {
				return err
			}
			if viewFlag == "" {
				viewFlag = env.Config.View
			}
			mode, ok := layout.ParseViewMode(viewFlag)
			if !ok {
				return fmt.Errorf("unknown view mode %q (want project or person)", viewFlag)
			}
			if dayWidth < panzoom.MinDayWidth || dayWidth > panzoom.MaxDayWidth {
				return fmt.Errorf("day width %d out of range [%d, %d]",
					dayWidth, panzoom.MinDayWidth, panzoom.MaxDayWidth)
			}

			records, err := env.Loader.Refresh(cmd.Context())
			if err != nil {
				return fmt.Errorf("load records: %w", err)
			}

			fb := filter.DefaultFallbacks()
			col := env.Collation()
			items := milestone.NormalizeAll(records)
			opts := filter.Derive(items, fb, col)
			projects = filter.Prune(projects, opts.Projects)
			people = filter.Prune(people, opts.People)
			visible := filter.Apply(items, projects, people, fb)

			plan := layout.Build(visible, mode, dayWidth, fb, col)
			scene := chart.Build(plan, calendar.Today(), len(items), chart.Meta{
				Creator:   env.Source.Creator(),
				Fallbacks: fb,
			})

			svg := chart.RenderSVG(scene, tui.ResolveTheme().Palette())
			if output == "-" || output == "" {
				fmt.Fprint(cmd.OutOrStdout(), svg)
				return nil
			}
			if err := os.WriteFile(output, []byte(svg), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file (- for stdout)")
	cmd.Flags().StringVar(&viewFlag, "view", "", "Grouping axis: project or person")
	cmd.Flags().IntVar(&dayWidth, "day-width", panzoom.DefaultDayWidth, "Day column width in pixels")
	cmd.Flags().StringSliceVar(&projects, "project", nil, "Only include these projects")
	cmd.Flags().StringSliceVar(&people, "person", nil, "Only include these people")

	return cmd
}
