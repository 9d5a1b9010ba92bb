package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/planline/planline/internal/chart"
	"github.com/planline/planline/internal/layout"
	"github.com/planline/planline/internal/panzoom"
)

// PxPerCell maps the chart's horizontal pixel space onto terminal
// cells. Pan and zoom math stays in pixels; the canvas only quantizes
// at paint time.
const PxPerCell = 8

// Label pane layout in cells: group column, content column, divider.
const (
	groupCells   = 16
	contentCells = 18
	// LabelCells is the fixed label-pane width including the divider.
	LabelCells = groupCells + contentCells + 1
)

// Canvas paints a chart scene into a two-pane terminal view. It is one
// painter over the scene contract; the SVG exporter is another.
type Canvas struct {
	styles *Styles
}

// NewCanvas creates a canvas with the given styles.
func NewCanvas(styles *Styles) *Canvas {
	return &Canvas{styles: styles}
}

// dayCells returns the width of one day column in cells.
func dayCells(dayWidthPx int) int {
	return max(1, (dayWidthPx+PxPerCell/2)/PxPerCell)
}

// Render paints the scene into a width×height cell block. The vertical
// window of the label pane follows the timeline pane's scroll offset,
// keeping row labels aligned with their bars.
func (c *Canvas) Render(scene chart.Scene, st *panzoom.State, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if scene.Empty != nil {
		return c.renderEmpty(scene, width, height)
	}

	dc := dayCells(scene.DayWidth)
	paneCells := max(0, width-LabelCells)
	bodyRows := max(0, height-1) // one header line

	// Scroll offsets, pixel space quantized to cells / rows.
	colOffset := 0
	if scene.DayWidth > 0 {
		colOffset = st.ScrollX * dc / scene.DayWidth
	}
	totalCols := (scene.TimelineWidth / max(scene.DayWidth, 1)) * dc
	colOffset = min(max(colOffset, 0), max(totalCols-paneCells, 0))

	rowOffset := st.ScrollY / layout.RowHeight
	rowOffset = min(max(rowOffset, 0), max(len(scene.Rows)-bodyRows, 0))

	var b strings.Builder
	b.WriteString(c.renderHeader(scene, dc, colOffset, paneCells))
	b.WriteString("\n")

	for line := 0; line < bodyRows; line++ {
		i := rowOffset + line
		if i >= len(scene.Rows) {
			b.WriteString(strings.Repeat(" ", width))
		} else {
			b.WriteString(c.renderRow(scene, scene.Rows[i], dc, colOffset, paneCells))
		}
		if line < bodyRows-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (c *Canvas) renderHeader(scene chart.Scene, dc, colOffset, paneCells int) string {
	s := c.styles

	label := fit(scene.Header.AxisGroup, groupCells) + fit(scene.Header.AxisContent, contentCells)
	left := s.Axis.Render(label) + s.Divider.Render("│")

	row := []rune(strings.Repeat(" ", paneCells))
	for _, tick := range scene.Header.Ticks {
		x := tick.Index*dc - colOffset
		for j, r := range tick.Label {
			if x+j < 0 || x+j >= paneCells {
				continue
			}
			row[x+j] = r
		}
	}
	return left + s.Tick.Render(string(row))
}

func (c *Canvas) renderRow(scene chart.Scene, row chart.RowView, dc, colOffset, paneCells int) string {
	s := c.styles

	groupStyle := s.GroupDim
	if row.GroupStart {
		groupStyle = s.Group
	}
	left := groupStyle.Render(fit(row.GroupLabel, groupCells)) +
		s.Body.Render(fit(row.Label, contentCells)) +
		s.Divider.Render("│")

	barStyle := s.BarActive
	if row.Bar.Completed {
		barStyle = s.BarDone
	}

	weekend := make(map[int]bool, len(scene.WeekendCols))
	for _, col := range scene.WeekendCols {
		weekend[col] = true
	}

	var pane strings.Builder
	for x := 0; x < paneCells; x++ {
		col := colOffset + x
		day := col / dc

		inBar := day >= row.Bar.FromIndex && day <= row.Bar.ToIndex && col < (row.Bar.ToIndex+1)*dc
		switch {
		case inBar:
			pane.WriteString(barStyle.Render("█"))
		case scene.TodayCol >= 0 && day == scene.TodayCol:
			pane.WriteString(s.Today.Render(" "))
		case weekend[day]:
			pane.WriteString(s.Weekend.Render(" "))
		case col%dc == 0:
			pane.WriteString(s.Divider.Render("┆"))
		default:
			pane.WriteString(" ")
		}
	}

	return left + pane.String()
}

func (c *Canvas) renderEmpty(scene chart.Scene, width, height int) string {
	s := c.styles
	block := lipgloss.JoinVertical(lipgloss.Left,
		s.Bold.Render(scene.Empty.Title),
		s.Muted.Render(scene.Empty.Body),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

// FooterLine renders the per-render meta summary: creator and visible
// count, always including the zero case.
func (c *Canvas) FooterLine(scene chart.Scene) string {
	s := c.styles
	summary := fmt.Sprintf("%d visible", scene.Footer.VisibleCount)
	if scene.Footer.Creator != "" {
		summary = scene.Footer.Creator + chart.TooltipSeparator + summary
	}
	return s.StatusBar.Render(summary)
}

// fit pads or truncates a label to exactly w cells.
func fit(s string, w int) string {
	return lipgloss.NewStyle().Width(w).MaxWidth(w).MaxHeight(1).Render(s)
}
