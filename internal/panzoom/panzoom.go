// Package panzoom holds the session-scoped layout state and the
// pointer-drag / wheel-zoom state machines. It mutates only scroll
// offsets and the day width; the item collection is never touched.
package panzoom

import "math"

// Day-width bounds in pixels. Wheel zoom clamps into this range.
const (
	MinDayWidth     = 6
	MaxDayWidth     = 80
	DefaultDayWidth = 18
)

// Multiplicative wheel steps: scroll away from the user zooms in,
// toward the user zooms out.
const (
	zoomInFactor  = 1.12
	zoomOutFactor = 0.88
)

// State is the mutable layout state of one chart session. It survives
// filter and view-mode changes and is reset on a full data refresh.
type State struct {
	DayWidth int
	ScrollX  int
	ScrollY  int

	drag dragState
}

type dragState struct {
	active      bool
	startX      int
	startScroll int
}

// NewState returns layout state at the default zoom with no scroll.
func NewState() *State {
	return &State{DayWidth: DefaultDayWidth}
}

// Reset restores defaults, for a full data refresh.
func (s *State) Reset() {
	*s = State{DayWidth: DefaultDayWidth}
}

// clampDayWidth bounds a proposed day width.
func clampDayWidth(w int) int {
	if w < MinDayWidth {
		return MinDayWidth
	}
	if w > MaxDayWidth {
		return MaxDayWidth
	}
	return w
}

// StartDrag begins a pan gesture at cursor x.
func (s *State) StartDrag(x int) {
	s.drag = dragState{active: true, startX: x, startScroll: s.ScrollX}
}

// Dragging reports whether a pan gesture is in progress.
func (s *State) Dragging() bool {
	return s.drag.active
}

// MoveDrag updates the horizontal scroll for the current cursor x.
// No-op unless a drag is in progress. No inertia; callers clamp to
// their pane's scroll bounds.
func (s *State) MoveDrag(x int) {
	if !s.drag.active {
		return
	}
	s.ScrollX = s.drag.startScroll - (x - s.drag.startX)
}

// EndDrag releases the pointer capture.
func (s *State) EndDrag() {
	s.drag = dragState{}
}

// Wheel applies one zoom step anchored at the cursor. cursorX is the
// cursor position within the timeline pane; delta is the vertical wheel
// movement (positive = away = zoom in). Returns false when the clamped
// day width did not change, in which case no re-render is needed.
//
// Anchor contract: the fractional day index under the cursor before the
// rescale stays under the cursor after it, via
// scroll' = fracIndex*newWidth - cursorX.
func (s *State) Wheel(cursorX, delta int) bool {
	if delta == 0 {
		return false
	}

	factor := zoomInFactor
	if delta < 0 {
		factor = zoomOutFactor
	}

	next := clampDayWidth(int(math.Round(float64(s.DayWidth) * factor)))
	if next == s.DayWidth {
		return false
	}

	contentX := float64(s.ScrollX + cursorX)
	fracIndex := contentX / float64(s.DayWidth)

	s.DayWidth = next
	s.ScrollX = int(math.Round(fracIndex*float64(next))) - cursorX
	return true
}

// ClampScroll bounds the scroll offsets to the given content extents,
// where maxX/maxY are content size minus viewport size (zero floors).
func (s *State) ClampScroll(maxX, maxY int) {
	s.ScrollX = clamp(s.ScrollX, 0, max(maxX, 0))
	s.ScrollY = clamp(s.ScrollY, 0, max(maxY, 0))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
