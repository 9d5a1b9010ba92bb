package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// MultiPicker is an embedded multi-select list used for the project and
// people filter choosers. An empty selection means "no restriction".
type MultiPicker struct {
	title    string
	options  []string
	selected map[string]bool
	cursor   int
	styles   *Styles

	maxVisible   int
	scrollOffset int
}

// NewMultiPicker creates a picker over the given options with the given
// values pre-selected.
func NewMultiPicker(title string, options, selected []string, styles *Styles) *MultiPicker {
	sel := make(map[string]bool, len(selected))
	for _, s := range selected {
		sel[s] = true
	}
	return &MultiPicker{
		title:      title,
		options:    options,
		selected:   sel,
		styles:     styles,
		maxVisible: 12,
	}
}

// PickerResult reports how a picker interaction ended.
type PickerResult int

const (
	PickerPending PickerResult = iota
	PickerApplied
	PickerCanceled
)

// Update handles one key event. The picker owns navigation and
// toggling; enter applies, esc cancels.
func (m *MultiPicker) Update(msg tea.KeyMsg) PickerResult {
	switch msg.String() {
	case "esc", "q":
		return PickerCanceled
	case "enter":
		return PickerApplied
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case " ", "x":
		if m.cursor < len(m.options) {
			opt := m.options[m.cursor]
			m.selected[opt] = !m.selected[opt]
		}
	case "a":
		// Toggle between everything and nothing selected.
		all := true
		for _, opt := range m.options {
			if !m.selected[opt] {
				all = false
				break
			}
		}
		for _, opt := range m.options {
			m.selected[opt] = !all
		}
	}

	// Keep the cursor inside the visible window.
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+m.maxVisible {
		m.scrollOffset = m.cursor - m.maxVisible + 1
	}
	return PickerPending
}

// Selection returns the checked options in option order. All-checked or
// none-checked both collapse to nil, the "no restriction" selection.
func (m *MultiPicker) Selection() []string {
	var sel []string
	for _, opt := range m.options {
		if m.selected[opt] {
			sel = append(sel, opt)
		}
	}
	if len(sel) == len(m.options) {
		return nil
	}
	return sel
}

// View renders the picker overlay.
func (m *MultiPicker) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render(m.title))
	b.WriteString("\n\n")

	if len(m.options) == 0 {
		b.WriteString(s.Muted.Render("Nothing to filter on."))
		b.WriteString("\n")
	}

	end := min(m.scrollOffset+m.maxVisible, len(m.options))
	for i := m.scrollOffset; i < end; i++ {
		opt := m.options[i]

		check := "[ ] "
		if m.selected[opt] {
			check = "[x] "
		}

		line := check + opt
		if i == m.cursor {
			b.WriteString(s.Cursor.Render("> ") + s.Bold.Render(line))
		} else {
			b.WriteString("  " + s.Body.Render(line))
		}
		b.WriteString("\n")
	}

	if end < len(m.options) {
		b.WriteString(s.Muted.Render("  …"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Help.Render("space toggle · a all/none · enter apply · esc cancel"))
	return b.String()
}
