// Package layout groups visible milestones into display rows and
// computes the pixel geometry of the chart surface.
package layout

import (
	"sort"

	"github.com/planline/planline/internal/calendar"
	"github.com/planline/planline/internal/filter"
	"github.com/planline/planline/internal/milestone"
)

// ViewMode selects the grouping axis.
type ViewMode string

const (
	ViewProject ViewMode = "project"
	ViewPerson  ViewMode = "person"
)

// ParseViewMode validates a raw view mode string.
func ParseViewMode(s string) (ViewMode, bool) {
	switch ViewMode(s) {
	case ViewProject, ViewPerson:
		return ViewMode(s), true
	}
	return "", false
}

// Pixel geometry constants shared by all render targets.
const (
	HeaderHeight   = 40
	RowHeight      = 28
	LabelPaneWidth = 280
	Margin         = 40
)

// Row is one renderable horizontal slot: exactly one item under one
// group. Rows are ephemeral and rebuilt every render.
type Row struct {
	GroupLabel string
	ItemLabel  string
	GroupStart bool // first row of its group gets emphasized styling
	Item       milestone.Item
}

// Plan is the output of one layout pass: the ordered row list plus the
// day axis and geometry derived from the visible span.
type Plan struct {
	Mode     ViewMode
	Rows     []Row
	DayKeys  []int
	MinKey   int
	MaxKey   int
	DayWidth int

	dayIndex map[int]int
}

// Empty reports whether the plan has nothing to draw.
func (p Plan) Empty() bool {
	return len(p.Rows) == 0 || len(p.DayKeys) == 0
}

// TimelineWidth is the width of the scrollable day-grid pane in pixels.
func (p Plan) TimelineWidth() int {
	return len(p.DayKeys)*p.DayWidth + Margin
}

// Height is the pane height in pixels, shared by both panes.
func (p Plan) Height() int {
	return HeaderHeight + len(p.Rows)*RowHeight + Margin
}

// DayIndex returns the x-axis column index of a day key, or -1 when the
// key is outside the plan's span.
func (p Plan) DayIndex(key int) int {
	if i, ok := p.dayIndex[key]; ok {
		return i
	}
	return -1
}

// BarSpan returns the inclusive column range an item's bar occupies.
// By construction every visible item's span is inside [MinKey, MaxKey],
// and a zero-length span occupies exactly one column.
func (p Plan) BarSpan(it milestone.Item) (from, to int) {
	return p.DayIndex(it.SpanStart()), p.DayIndex(it.SpanEnd())
}

// BarPixels returns the horizontal pixel range of an item's bar:
// [from*DayWidth, (to+1)*DayWidth).
func (p Plan) BarPixels(it milestone.Item) (x, w int) {
	from, to := p.BarSpan(it)
	if from < 0 || to < 0 {
		return 0, 0
	}
	return from * p.DayWidth, (to - from + 1) * p.DayWidth
}

// Build runs one layout pass over the visible items. A degenerate span
// or an empty collection yields a zero-row plan; the renderer shows an
// explicit empty state instead.
func Build(items []milestone.Item, mode ViewMode, dayWidth int, fb filter.Fallbacks, col *filter.Collation) Plan {
	plan := Plan{Mode: mode, DayWidth: dayWidth}
	if len(items) == 0 {
		return plan
	}

	// Partition into groups. In person mode an item contributes one row
	// under each of its people.
	groups := make(map[string][]milestone.Item)
	var keys []string
	add := func(key string, it milestone.Item) {
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], it)
	}
	for _, it := range items {
		switch mode {
		case ViewPerson:
			for _, name := range filter.PeopleLabels(it, fb) {
				add(name, it)
			}
		default:
			add(filter.ProjectLabel(it, fb), it)
		}
	}

	col.Sort(keys)

	for _, key := range keys {
		members := groups[key]
		// Stable: ties keep original fetch order.
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].SpanStart() < members[j].SpanStart()
		})
		for i, it := range members {
			plan.Rows = append(plan.Rows, Row{
				GroupLabel: key,
				ItemLabel:  it.Content,
				GroupStart: i == 0,
				Item:       it,
			})
		}
	}

	// Global date span over the visible set.
	minKey, maxKey := items[0].SpanStart(), items[0].SpanEnd()
	for _, it := range items[1:] {
		minKey = min(minKey, it.SpanStart())
		maxKey = max(maxKey, it.SpanEnd())
	}

	plan.DayKeys = calendar.Days(minKey, maxKey)
	if len(plan.DayKeys) == 0 {
		// Degenerate range: treated the same as no data.
		return Plan{Mode: mode, DayWidth: dayWidth}
	}
	plan.MinKey = minKey
	plan.MaxKey = maxKey
	plan.dayIndex = make(map[int]int, len(plan.DayKeys))
	for i, k := range plan.DayKeys {
		plan.dayIndex[k] = i
	}
	return plan
}
