// Package chart turns a layout plan into a render-target-agnostic
// visual tree. Painters (the terminal canvas, the SVG exporter) consume
// the Scene; nothing here touches a concrete drawing surface, and
// building a scene never mutates the item collection.
package chart

import (
	"fmt"
	"strings"

	"github.com/planline/planline/internal/calendar"
	"github.com/planline/planline/internal/filter"
	"github.com/planline/planline/internal/layout"
	"github.com/planline/planline/internal/richtext"
)

const (
	// ContentBudget caps the content label length before truncation.
	ContentBudget = 24

	// TickInterval spaces the header date labels to avoid crowding.
	TickInterval = 7

	// GroupPlaceholder stands in for a repeated group label on the
	// second and later rows of the same group.
	GroupPlaceholder = "·"

	// UntitledLabel displays for items with empty content.
	UntitledLabel = "(untitled)"

	// TooltipSeparator joins the tooltip fields.
	TooltipSeparator = " · "
)

// Tick is one dated header label on the timeline axis.
type Tick struct {
	Index int
	Label string // month-day portion of the date
}

// Header describes the fixed header row of both panes.
type Header struct {
	AxisGroup   string // "Project" or "Person"
	AxisContent string
	Ticks       []Tick
}

// Bar is one milestone bar, in both column and pixel coordinates.
type Bar struct {
	FromIndex int
	ToIndex   int
	X         int
	W         int
	Completed bool
	Tooltip   string
}

// RowView is one renderable row across both panes.
type RowView struct {
	GroupLabel string // placeholder glyph after the group's first row
	GroupStart bool
	Label      string // truncated content label
	Bar        Bar
}

// Footer is the per-render meta summary. The count is always present,
// including the zero-match case.
type Footer struct {
	Creator      string
	VisibleCount int
}

// EmptyMessage is an explicit human-readable empty state drawn in place
// of the chart. It is a display state, never an error.
type EmptyMessage struct {
	Title string
	Body  string
}

// Meta carries display-only context into a scene build.
type Meta struct {
	Creator   string
	Fallbacks filter.Fallbacks
}

// Scene is the complete visual-tree description of one render pass.
type Scene struct {
	Mode          layout.ViewMode
	DayWidth      int
	LabelWidth    int
	TimelineWidth int
	Height        int

	Header      Header
	WeekendCols []int
	TodayCol    int // -1 when today is outside the span
	Rows        []RowView
	Footer      Footer

	// Empty, when set, replaces everything but the footer.
	Empty *EmptyMessage
}

// NoSource is the empty state when no record source is configured.
func NoSource() *EmptyMessage {
	return &EmptyMessage{
		Title: "No data source configured",
		Body:  "Point planline at a records file or a record source.",
	}
}

// NoGrant is the empty state when the permission context is missing.
func NoGrant() *EmptyMessage {
	return &EmptyMessage{
		Title: "Missing permission context",
		Body:  "The record source did not grant access to any records.",
	}
}

// NoRecords is the empty state when the source returned nothing at all.
func NoRecords() *EmptyMessage {
	return &EmptyMessage{
		Title: "No records",
		Body:  "The source has no dated records to lay out.",
	}
}

// NoMatches is the empty state when records exist but filters exclude
// all of them.
func NoMatches() *EmptyMessage {
	return &EmptyMessage{
		Title: "No matches",
		Body:  "Records exist, but none match the current filters.",
	}
}

// EmptyScene builds a scene that carries only an empty state and the
// footer summary.
func EmptyScene(msg *EmptyMessage, mode layout.ViewMode, meta Meta) Scene {
	return Scene{
		Mode:       mode,
		LabelWidth: layout.LabelPaneWidth,
		TodayCol:   -1,
		Footer:     Footer{Creator: meta.Creator, VisibleCount: 0},
		Empty:      msg,
	}
}

// Build assembles the visual tree for one render pass. totalItems is
// the unfiltered collection size, used to distinguish "no records" from
// "nothing matches the filters" when the plan is empty.
func Build(plan layout.Plan, todayKey, totalItems int, meta Meta) Scene {
	if plan.Empty() {
		msg := NoMatches()
		if totalItems == 0 {
			msg = NoRecords()
		}
		return EmptyScene(msg, plan.Mode, meta)
	}

	scene := Scene{
		Mode:          plan.Mode,
		DayWidth:      plan.DayWidth,
		LabelWidth:    layout.LabelPaneWidth,
		TimelineWidth: plan.TimelineWidth(),
		Height:        plan.Height(),
		TodayCol:      plan.DayIndex(todayKey),
		Footer:        Footer{Creator: meta.Creator, VisibleCount: countItems(plan)},
	}

	scene.Header = Header{
		AxisGroup:   axisLabel(plan.Mode),
		AxisContent: "Content",
	}
	last := len(plan.DayKeys) - 1
	for i, key := range plan.DayKeys {
		if i == 0 || i == last || i%TickInterval == 0 {
			scene.Header.Ticks = append(scene.Header.Ticks, Tick{
				Index: i,
				Label: calendar.FormatShort(key),
			})
		}
		if calendar.IsWeekend(key) {
			scene.WeekendCols = append(scene.WeekendCols, i)
		}
	}

	for _, row := range plan.Rows {
		from, to := plan.BarSpan(row.Item)
		x, w := plan.BarPixels(row.Item)

		label := row.ItemLabel
		if label == "" {
			label = UntitledLabel
		}

		group := row.GroupLabel
		if !row.GroupStart {
			group = GroupPlaceholder
		}

		scene.Rows = append(scene.Rows, RowView{
			GroupLabel: group,
			GroupStart: row.GroupStart,
			Label:      richtext.Truncate(label, ContentBudget),
			Bar: Bar{
				FromIndex: from,
				ToIndex:   to,
				X:         x,
				W:         w,
				Completed: row.Item.Completed,
				Tooltip:   tooltip(row, meta.Fallbacks),
			},
		})
	}

	return scene
}

func axisLabel(mode layout.ViewMode) string {
	if mode == layout.ViewPerson {
		return "Person"
	}
	return "Project"
}

// countItems counts distinct items behind the rows: in person mode one
// item may back several rows but is still one visible record.
func countItems(plan layout.Plan) int {
	seen := make(map[itemIdentity]struct{}, len(plan.Rows))
	for _, row := range plan.Rows {
		seen[itemIdentity{row.Item.Origin.BlockID, row.Item.Origin.RecordID, row.Item.StartKey, row.Item.Content}] = struct{}{}
	}
	return len(seen)
}

// itemIdentity is a comparable proxy for deduplicating rows that share
// one item.
type itemIdentity struct {
	blockID  string
	recordID string
	startKey int
	content  string
}

func tooltip(row layout.Row, fb filter.Fallbacks) string {
	it := row.Item
	parts := []string{
		filter.ProjectLabel(it, fb),
		firstNonEmpty(it.Content, UntitledLabel),
		fmt.Sprintf("%s ~ %s", calendar.Format(it.SpanStart()), calendar.Format(it.SpanEnd())),
		strings.Join(filter.PeopleLabels(it, fb), ", "),
	}
	return strings.Join(parts, TooltipSeparator)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
