package chart

import (
	"fmt"
	"strings"

	"github.com/planline/planline/internal/layout"
)

// RenderSVG paints a scene as a standalone SVG document. The element
// order follows the back-to-front paint order: pane backgrounds,
// weekend bands, today band, separators and grid lines, header, rows,
// footer. Bar tooltips become <title> children.
func RenderSVG(scene Scene, pal Palette) string {
	pal = pal.withDefaults()

	width := scene.LabelWidth + scene.TimelineWidth
	height := scene.Height
	if scene.Empty != nil {
		width = scene.LabelWidth + 3*layout.LabelPaneWidth
		height = layout.HeaderHeight + 4*layout.RowHeight
	}

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"+
		`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n",
		width, height))

	// Pane backgrounds.
	svg.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>`+"\n", pal.Background))
	svg.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n",
		scene.LabelWidth, height, pal.PaneBackground))

	if scene.Empty != nil {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="16" font-weight="bold" fill="%s">%s</text>`+"\n",
			scene.LabelWidth+16, layout.HeaderHeight, pal.Text, escape(scene.Empty.Title)))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="12" fill="%s">%s</text>`+"\n",
			scene.LabelWidth+16, layout.HeaderHeight+layout.RowHeight, pal.TextMuted, escape(scene.Empty.Body)))
		writeFooter(&svg, scene, pal, height)
		svg.WriteString("</svg>\n")
		return svg.String()
	}

	paneX := scene.LabelWidth
	gridTop := layout.HeaderHeight
	gridBottom := gridTop + len(scene.Rows)*layout.RowHeight

	// Weekend shading: full-height band per weekend column.
	for _, col := range scene.WeekendCols {
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			paneX+col*scene.DayWidth, gridTop, scene.DayWidth, gridBottom-gridTop, pal.Weekend))
	}

	// Today band, independent of weekend shading.
	if scene.TodayCol >= 0 {
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			paneX+scene.TodayCol*scene.DayWidth, gridTop, scene.DayWidth, gridBottom-gridTop, pal.Today))
	}

	// Vertical separator between panes.
	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="0" x2="%d" y2="%d" stroke="%s" stroke-width="2"/>`+"\n",
		paneX, paneX, height, pal.Grid))

	// Day-column grid lines.
	dayCount := scene.TimelineWidth / max(scene.DayWidth, 1)
	for i := 0; i <= dayCount; i++ {
		x := paneX + i*scene.DayWidth
		if x > paneX+scene.TimelineWidth {
			break
		}
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			x, gridTop, x, gridBottom, pal.Grid))
	}

	// Row separators across both panes.
	for i := 0; i <= len(scene.Rows); i++ {
		y := gridTop + i*layout.RowHeight
		svg.WriteString(fmt.Sprintf(`<line x1="0" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			y, width, y, pal.Grid))
	}

	// Header: axis titles in the label pane, date ticks in the timeline.
	headerY := layout.HeaderHeight - 14
	svg.WriteString(fmt.Sprintf(`<text x="8" y="%d" font-size="12" font-weight="bold" fill="%s">%s</text>`+"\n",
		headerY, pal.Text, escape(scene.Header.AxisGroup)))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="12" font-weight="bold" fill="%s">%s</text>`+"\n",
		scene.LabelWidth/2, headerY, pal.Text, escape(scene.Header.AxisContent)))
	for _, tick := range scene.Header.Ticks {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="10" fill="%s">%s</text>`+"\n",
			paneX+tick.Index*scene.DayWidth+2, headerY, pal.TextMuted, escape(tick.Label)))
	}

	// Rows: group label, content label, milestone bar.
	for i, row := range scene.Rows {
		rowY := gridTop + i*layout.RowHeight
		textY := rowY + layout.RowHeight - 9

		weight := "normal"
		groupFill := pal.TextMuted
		if row.GroupStart {
			weight = "bold"
			groupFill = pal.Text
		}
		svg.WriteString(fmt.Sprintf(`<text x="8" y="%d" font-size="12" font-weight="%s" fill="%s">%s</text>`+"\n",
			textY, weight, groupFill, escape(row.GroupLabel)))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="12" fill="%s">%s</text>`+"\n",
			scene.LabelWidth/2, textY, pal.Text, escape(row.Label)))

		barFill := pal.BarActive
		opacity := "1.0"
		if row.Bar.Completed {
			barFill = pal.BarDone
			opacity = "0.7"
		}
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" rx="4" fill="%s" fill-opacity="%s">`,
			paneX+row.Bar.X, rowY+5, row.Bar.W, layout.RowHeight-10, barFill, opacity))
		svg.WriteString(fmt.Sprintf(`<title>%s</title></rect>`+"\n", escape(row.Bar.Tooltip)))
	}

	writeFooter(&svg, scene, pal, height)
	svg.WriteString("</svg>\n")
	return svg.String()
}

func writeFooter(svg *strings.Builder, scene Scene, pal Palette, height int) {
	footer := fmt.Sprintf("%d visible", scene.Footer.VisibleCount)
	if scene.Footer.Creator != "" {
		footer = scene.Footer.Creator + TooltipSeparator + footer
	}
	svg.WriteString(fmt.Sprintf(`<text x="8" y="%d" font-size="11" fill="%s">%s</text>`+"\n",
		height-10, pal.TextMuted, escape(footer)))
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
