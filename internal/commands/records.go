package commands

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"

	"github.com/planline/planline/internal/calendar"
	"github.com/planline/planline/internal/filter"
	"github.com/planline/planline/internal/milestone"
)

// recordOut is the JSON shape emitted per normalized item.
type recordOut struct {
	Content   string   `json:"content"`
	Project   string   `json:"project"`
	People    []string `json:"people,omitempty"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Completed bool     `json:"completed"`
	BlockID   string   `json:"blockId,omitempty"`
	RecordID  string   `json:"recordId,omitempty"`
}

// NewRecordsCmd creates the records command, which prints the
// normalized items as JSON.
func NewRecordsCmd() *cobra.Command {
	var (
		jqExpr   string
		projects []string
		people   []string
	)

	cmd := &cobra.Command{
		Use:   "records",
		Short: "Print normalized records as JSON",
		Long: "records loads the record source, normalizes dates, applies any " +
			"filters, and prints the surviving items as a JSON array. " +
			"Use --jq to post-process the output with a jq expression.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := ResolveEnv(cmd)
			if err != nil {
				return err
			}
			records, err := env.Loader.Refresh(cmd.Context())
			if err != nil {
				return fmt.Errorf("load records: %w", err)
			}

			fb := filter.DefaultFallbacks()
			items := milestone.NormalizeAll(records)
			items = filter.Apply(items, projects, people, fb)

			out := make([]recordOut, 0, len(items))
			for _, it := range items {
				out = append(out, recordOut{
					Content:   it.Content,
					Project:   it.ProjectName,
					People:    it.People,
					Start:     calendar.Format(it.SpanStart()),
					End:       calendar.Format(it.SpanEnd()),
					Completed: it.Completed,
					BlockID:   it.Origin.BlockID,
					RecordID:  it.Origin.RecordID,
				})
			}

			if jqExpr != "" {
				return printFiltered(cmd, out, jqExpr)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&jqExpr, "jq", "", "Filter output through a jq expression")
	cmd.Flags().StringSliceVar(&projects, "project", nil, "Only include these projects")
	cmd.Flags().StringSliceVar(&people, "person", nil, "Only include these people")

	return cmd
}

// printFiltered runs the output through a jq expression and prints each
// result value on its own line.
func printFiltered(cmd *cobra.Command, out []recordOut, expr string) error {
	query, err := gojq.Parse(expr)
	if err != nil {
		return fmt.Errorf("parse jq expression: %w", err)
	}

	// gojq operates on generic JSON values.
	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	var input any
	if err := json.Unmarshal(data, &input); err != nil {
		return err
	}

	iter := query.RunWithContext(cmd.Context(), input)
	enc := json.NewEncoder(cmd.OutOrStdout())
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return fmt.Errorf("jq: %w", err)
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}
