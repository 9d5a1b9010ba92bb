package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestPickerToggleAndApply(t *testing.T) {
	p := NewMultiPicker("Filter by project", []string{"atlas", "borealis", "cascade"}, nil, NewStyles())

	assert.Equal(t, PickerPending, p.Update(keyMsg(" ")))
	assert.Equal(t, PickerPending, p.Update(keyMsg("down")))
	assert.Equal(t, PickerPending, p.Update(keyMsg("down")))
	assert.Equal(t, PickerPending, p.Update(keyMsg(" ")))
	assert.Equal(t, PickerApplied, p.Update(keyMsg("enter")))

	assert.Equal(t, []string{"atlas", "cascade"}, p.Selection())
}

func TestPickerPreselected(t *testing.T) {
	p := NewMultiPicker("Filter by person", []string{"Alice", "Bob"}, []string{"Bob"}, NewStyles())
	assert.Equal(t, []string{"Bob"}, p.Selection())

	// Untoggle the last checked option: none checked means no restriction.
	p.Update(keyMsg("down"))
	p.Update(keyMsg(" "))
	assert.Nil(t, p.Selection())
}

func TestPickerAllCollapsesToNil(t *testing.T) {
	p := NewMultiPicker("Filter by project", []string{"a", "b"}, nil, NewStyles())

	p.Update(keyMsg("a"))
	assert.Nil(t, p.Selection(), "all checked means no restriction")

	p.Update(keyMsg("a"))
	assert.Nil(t, p.Selection(), "none checked means no restriction")
}

func TestPickerCancel(t *testing.T) {
	p := NewMultiPicker("Filter by project", []string{"a"}, nil, NewStyles())
	assert.Equal(t, PickerCanceled, p.Update(keyMsg("esc")))
}

func TestPickerCursorBounds(t *testing.T) {
	p := NewMultiPicker("Filter by project", []string{"a", "b"}, nil, NewStyles())

	p.Update(keyMsg("up"))
	assert.Equal(t, 0, p.cursor)

	p.Update(keyMsg("down"))
	p.Update(keyMsg("down"))
	p.Update(keyMsg("down"))
	assert.Equal(t, 1, p.cursor)
}

func TestPickerViewShowsChecks(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	p := NewMultiPicker("Filter by project", []string{"atlas", "borealis"}, []string{"atlas"}, NewStylesWithTheme(NoColorTheme()))

	view := p.View()
	assert.Contains(t, view, "[x] atlas")
	assert.Contains(t, view, "[ ] borealis")
	assert.Contains(t, view, "enter apply")
}
