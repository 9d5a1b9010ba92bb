package panzoom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrag(t *testing.T) {
	s := NewState()
	s.ScrollX = 100

	s.StartDrag(50)
	require.True(t, s.Dragging())

	// Cursor moved right by 30 → content pans left by 30.
	s.MoveDrag(80)
	assert.Equal(t, 70, s.ScrollX)

	// Cursor moved left of the origin → scroll grows.
	s.MoveDrag(20)
	assert.Equal(t, 130, s.ScrollX)

	s.EndDrag()
	assert.False(t, s.Dragging())

	// Moves after release are ignored.
	s.MoveDrag(500)
	assert.Equal(t, 130, s.ScrollX)
}

func TestWheelStep(t *testing.T) {
	s := NewState()
	require.Equal(t, DefaultDayWidth, s.DayWidth)

	changed := s.Wheel(0, 1)
	assert.True(t, changed)
	assert.Equal(t, 20, s.DayWidth) // round(18*1.12)

	s = NewState()
	changed = s.Wheel(0, -1)
	assert.True(t, changed)
	assert.Equal(t, 16, s.DayWidth) // round(18*0.88)

	s = NewState()
	assert.False(t, s.Wheel(0, 0))
	assert.Equal(t, DefaultDayWidth, s.DayWidth)
}

func TestWheelClamp(t *testing.T) {
	s := NewState()
	for i := 0; i < 100; i++ {
		s.Wheel(0, 1)
	}
	assert.Equal(t, MaxDayWidth, s.DayWidth)

	// At the boundary a further zoom-in is a no-op: no render triggered.
	assert.False(t, s.Wheel(0, 1))
	assert.Equal(t, MaxDayWidth, s.DayWidth)

	for i := 0; i < 100; i++ {
		s.Wheel(0, -1)
	}
	assert.Equal(t, MinDayWidth, s.DayWidth)
	assert.False(t, s.Wheel(0, -1))
}

func TestWheelAnchorPreservation(t *testing.T) {
	s := NewState()
	s.ScrollX = 90
	cursorX := 54

	fracIndex := float64(s.ScrollX+cursorX) / float64(s.DayWidth)
	require.True(t, s.Wheel(cursorX, 1))

	want := int(math.Round(fracIndex*float64(s.DayWidth))) - cursorX
	assert.Equal(t, want, s.ScrollX)

	// The date under the cursor is still under the cursor.
	after := float64(s.ScrollX+cursorX) / float64(s.DayWidth)
	assert.InDelta(t, fracIndex, after, 1.0/float64(s.DayWidth))
}

func TestWheelAnchorAcrossSequence(t *testing.T) {
	s := NewState()
	s.ScrollX = 200
	cursorX := 31

	for i := 0; i < 5; i++ {
		before := float64(s.ScrollX+cursorX) / float64(s.DayWidth)
		if !s.Wheel(cursorX, 1) {
			break
		}
		after := float64(s.ScrollX+cursorX) / float64(s.DayWidth)
		assert.InDelta(t, before, after, 1.0/float64(s.DayWidth))
		assert.LessOrEqual(t, s.DayWidth, MaxDayWidth)
		assert.GreaterOrEqual(t, s.DayWidth, MinDayWidth)
	}
}

func TestClampScroll(t *testing.T) {
	s := NewState()
	s.ScrollX = -10
	s.ScrollY = 500

	s.ClampScroll(300, 40)
	assert.Equal(t, 0, s.ScrollX)
	assert.Equal(t, 40, s.ScrollY)

	// Negative extents floor at zero.
	s.ScrollX = 25
	s.ClampScroll(-5, -5)
	assert.Equal(t, 0, s.ScrollX)
	assert.Equal(t, 0, s.ScrollY)
}

func TestReset(t *testing.T) {
	s := NewState()
	s.ScrollX = 40
	s.ScrollY = 12
	s.Wheel(10, 1)
	s.StartDrag(5)

	s.Reset()
	assert.Equal(t, DefaultDayWidth, s.DayWidth)
	assert.Zero(t, s.ScrollX)
	assert.Zero(t, s.ScrollY)
	assert.False(t, s.Dragging())
}
