package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planline/planline/internal/calendar"
	"github.com/planline/planline/internal/chart"
	"github.com/planline/planline/internal/filter"
	"github.com/planline/planline/internal/layout"
	"github.com/planline/planline/internal/milestone"
	"github.com/planline/planline/internal/panzoom"
)

func testScene(t *testing.T) chart.Scene {
	t.Helper()
	items := []milestone.Item{
		{Content: "Design review", ProjectName: "atlas", StartKey: calendar.Key(2024, 3, 4), EndKey: calendar.Key(2024, 3, 6)},
		{Content: "Rollout", ProjectName: "borealis", StartKey: calendar.Key(2024, 3, 8), EndKey: calendar.Key(2024, 3, 12)},
	}
	fb := filter.DefaultFallbacks()
	plan := layout.Build(items, layout.ViewProject, panzoom.DefaultDayWidth, fb, filter.NewCollation("en-US"))
	require.False(t, plan.Empty())
	return chart.Build(plan, calendar.Key(2024, 3, 5), len(items), chart.Meta{Creator: "pat", Fallbacks: fb})
}

func TestCanvasRenderLabels(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	c := NewCanvas(NewStylesWithTheme(NoColorTheme()))
	scene := testScene(t)

	out := c.Render(scene, panzoom.NewState(), 120, 10)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)

	assert.Contains(t, lines[0], "Project")
	assert.Contains(t, lines[0], "Content")
	assert.Contains(t, lines[0], "03-04")
	assert.Contains(t, out, "atlas")
	assert.Contains(t, out, "Design review")
	assert.Contains(t, out, "borealis")
	assert.Contains(t, out, "█")
}

func TestCanvasRenderEmptyStates(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	c := NewCanvas(NewStylesWithTheme(NoColorTheme()))
	meta := chart.Meta{Fallbacks: filter.DefaultFallbacks()}

	scene := chart.EmptyScene(chart.NoRecords(), layout.ViewProject, meta)
	out := c.Render(scene, panzoom.NewState(), 60, 8)
	assert.Contains(t, out, scene.Empty.Title)

	scene = chart.EmptyScene(chart.NoMatches(), layout.ViewProject, meta)
	out = c.Render(scene, panzoom.NewState(), 60, 8)
	assert.Contains(t, out, scene.Empty.Title)
}

func TestCanvasScrollClampsToContent(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	c := NewCanvas(NewStylesWithTheme(NoColorTheme()))
	scene := testScene(t)

	st := panzoom.NewState()
	st.ScrollX = 1 << 20
	st.ScrollY = 1 << 20
	out := c.Render(scene, st, 120, 10)
	assert.NotEmpty(t, out)
	assert.Len(t, strings.Split(out, "\n"), 10)
}

func TestCanvasZeroSize(t *testing.T) {
	c := NewCanvas(NewStyles())
	assert.Empty(t, c.Render(testScene(t), panzoom.NewState(), 0, 0))
}

func TestFooterLine(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	c := NewCanvas(NewStylesWithTheme(NoColorTheme()))

	out := c.FooterLine(testScene(t))
	assert.Contains(t, out, "pat")
	assert.Contains(t, out, "2 visible")

	empty := chart.EmptyScene(chart.NoRecords(), layout.ViewProject, chart.Meta{})
	assert.Contains(t, c.FooterLine(empty), "0 visible")
}
