package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the styled components for the chart TUI.
type Styles struct {
	theme Theme

	// Text styles
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Error   lipgloss.Style
	Axis    lipgloss.Style
	Tick    lipgloss.Style
	Group   lipgloss.Style
	GroupDim lipgloss.Style

	// Chart surface styles
	Weekend   lipgloss.Style
	Today     lipgloss.Style
	BarActive lipgloss.Style
	BarDone   lipgloss.Style
	Divider   lipgloss.Style

	// Interactive styles
	Selected lipgloss.Style
	Cursor   lipgloss.Style

	// Chrome
	StatusBar lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles creates a new Styles with the default theme.
func NewStyles() *Styles {
	return NewStylesWithTheme(DefaultTheme())
}

// NewStylesWithTheme creates a new Styles with a custom theme.
func NewStylesWithTheme(theme Theme) *Styles {
	s := &Styles{theme: theme}

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Primary)

	s.Body = lipgloss.NewStyle().
		Foreground(theme.Foreground)

	s.Muted = lipgloss.NewStyle().
		Foreground(theme.Muted)

	s.Bold = lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Foreground)

	s.Error = lipgloss.NewStyle().
		Foreground(theme.Error)

	s.Axis = lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Secondary)

	s.Tick = lipgloss.NewStyle().
		Foreground(theme.Muted)

	s.Group = lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Foreground)

	s.GroupDim = lipgloss.NewStyle().
		Foreground(theme.Muted)

	s.Weekend = lipgloss.NewStyle().
		Background(theme.Weekend)

	s.Today = lipgloss.NewStyle().
		Background(theme.Today)

	s.BarActive = lipgloss.NewStyle().
		Foreground(theme.BarActive)

	s.BarDone = lipgloss.NewStyle().
		Foreground(theme.BarDone).
		Faint(true)

	s.Divider = lipgloss.NewStyle().
		Foreground(theme.Border)

	s.Selected = lipgloss.NewStyle().
		Background(theme.Primary).
		Foreground(lipgloss.Color("#ffffff")).
		Padding(0, 1)

	s.Cursor = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(theme.Secondary)

	s.Help = lipgloss.NewStyle().
		Foreground(theme.Muted)

	return s
}

// Theme returns the current theme.
func (s *Styles) Theme() Theme {
	return s.theme
}
