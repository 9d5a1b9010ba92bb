// Package tui provides the interactive terminal chart.
package tui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/planline/planline/internal/chart"
)

// Theme defines the color tokens for the TUI, including the chart
// surface bands and bars.
type Theme struct {
	Primary    lipgloss.AdaptiveColor
	Secondary  lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Background lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
	Error      lipgloss.AdaptiveColor

	Weekend   lipgloss.AdaptiveColor
	Today     lipgloss.AdaptiveColor
	BarActive lipgloss.AdaptiveColor
	BarDone   lipgloss.AdaptiveColor
}

// DefaultTheme returns the default planline theme.
func DefaultTheme() Theme {
	return Theme{
		Primary:    lipgloss.AdaptiveColor{Light: "#1a73e8", Dark: "#8ab4f8"},
		Secondary:  lipgloss.AdaptiveColor{Light: "#5f6368", Dark: "#9aa0a6"},
		Muted:      lipgloss.AdaptiveColor{Light: "#80868b", Dark: "#6e7681"},
		Background: lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#1f1f1f"},
		Foreground: lipgloss.AdaptiveColor{Light: "#202124", Dark: "#e8eaed"},
		Border:     lipgloss.AdaptiveColor{Light: "#dadce0", Dark: "#3c4043"},
		Error:      lipgloss.AdaptiveColor{Light: "#d93025", Dark: "#f28b82"},

		Weekend:   lipgloss.AdaptiveColor{Light: "#f1f3f4", Dark: "#2a2d31"},
		Today:     lipgloss.AdaptiveColor{Light: "#fef7e0", Dark: "#3d3520"},
		BarActive: lipgloss.AdaptiveColor{Light: "#1a73e8", Dark: "#8ab4f8"},
		BarDone:   lipgloss.AdaptiveColor{Light: "#1e8e3e", Dark: "#81c995"},
	}
}

// NoColorTheme returns a theme with empty colors (honors NO_COLOR).
// Lipgloss treats empty strings as "no color", producing plain output.
func NoColorTheme() Theme {
	return Theme{}
}

// ResolveTheme loads a theme with the following precedence:
//  1. NO_COLOR env var set → NoColorTheme
//  2. PLANLINE_THEME env var → parse custom colors.toml file
//  3. User theme from ~/.config/planline/theme/colors.toml
//  4. Default theme
func ResolveTheme() Theme {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return NoColorTheme()
	}

	if path := os.Getenv("PLANLINE_THEME"); path != "" {
		if theme, err := LoadThemeFromFile(path); err == nil {
			return theme
		}
		// Fall through on error
	}

	if theme, err := LoadUserTheme(); err == nil {
		return theme
	}

	return DefaultTheme()
}

// LoadUserTheme attempts to load a theme from the user's planline
// config. The theme directory can be a symlink to another theme system.
func LoadUserTheme() (Theme, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Theme{}, err
	}

	path := filepath.Join(home, ".config", "planline", "theme", "colors.toml")
	return LoadThemeFromFile(path)
}

// LoadThemeFromFile parses a colors.toml file and returns a Theme.
func LoadThemeFromFile(path string) (Theme, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path from trusted config
	if err != nil {
		return Theme{}, err
	}

	colors, err := parseSimpleTOML(data)
	if err != nil {
		return Theme{}, err
	}

	return mapColorsToTheme(colors), nil
}

// parseSimpleTOML parses a simple TOML file with key = "value" format.
// This is a lightweight parser for colors.toml theme files.
func parseSimpleTOML(data []byte) (map[string]string, error) { //nolint:unparam // error return for future extensibility
	result := make(map[string]string)

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue // Skip malformed lines
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Strip inline comments: "value" # comment -> "value"
		if idx := findInlineComment(value); idx > 0 {
			value = strings.TrimSpace(value[:idx])
		}

		value = strings.Trim(value, `"'`)

		if !isValidHexColor(value) {
			continue
		}

		result[key] = value
	}

	return result, nil
}

// findInlineComment returns the index of an inline comment marker (#)
// that appears outside of quotes, or -1 if none found.
func findInlineComment(s string) int {
	inQuote := false
	quoteChar := rune(0)
	for i, c := range s {
		if !inQuote && (c == '"' || c == '\'') {
			inQuote = true
			quoteChar = c
		} else if inQuote && c == quoteChar {
			inQuote = false
		} else if !inQuote && c == '#' {
			return i
		}
	}
	return -1
}

// isValidHexColor checks if a string is a valid hex color (#RGB or #RRGGBB).
func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	for _, c := range hex {
		isDigit := c >= '0' && c <= '9'
		isLower := c >= 'a' && c <= 'f'
		isUpper := c >= 'A' && c <= 'F'
		if !isDigit && !isLower && !isUpper {
			return false
		}
	}
	return true
}

// mapColorsToTheme maps colors.toml color names to planline Theme
// semantics.
//
// Supported color keys (compatible with terminal theme formats):
//
//	accent = "#89b4fa"       → Primary, BarActive
//	foreground = "#cdd6f4"   → Foreground
//	background = "#1e1e2e"   → Background
//	color0 = "#45475a"       → Weekend band (black)
//	color1 = "#f38ba8"       → Error (red)
//	color2 = "#a6e3a1"       → BarDone (green)
//	color3 = "#f9e2af"       → Today band (yellow)
//	color4 = "#89b4fa"       → Primary fallback (blue)
//	color7 = "#bac2de"       → Secondary (white/light)
//	color8 = "#585b70"       → Muted, Border (bright black)
func mapColorsToTheme(colors map[string]string) Theme {
	defaults := DefaultTheme()

	get := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := colors[k]; ok {
				return v
			}
		}
		return ""
	}

	dark := func(keys []string, fallback lipgloss.AdaptiveColor) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{
			Light: fallback.Light,
			Dark:  getOrDefault(get(keys...), fallback.Dark),
		}
	}

	// Terminal themes are typically dark, so we populate Dark variants
	return Theme{
		Primary:    dark([]string{"accent", "color4"}, defaults.Primary),
		Secondary:  dark([]string{"color7"}, defaults.Secondary),
		Muted:      dark([]string{"color8", "color0"}, defaults.Muted),
		Background: dark([]string{"background"}, defaults.Background),
		Foreground: dark([]string{"foreground"}, defaults.Foreground),
		Border:     dark([]string{"color8", "color0"}, defaults.Border),
		Error:      dark([]string{"color1"}, defaults.Error),

		Weekend:   dark([]string{"color0"}, defaults.Weekend),
		Today:     dark([]string{"color3"}, defaults.Today),
		BarActive: dark([]string{"accent", "color4"}, defaults.BarActive),
		BarDone:   dark([]string{"color2"}, defaults.BarDone),
	}
}

// getOrDefault returns value if non-empty, otherwise defaultValue.
func getOrDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

// Palette flattens the theme into the chart renderer's color tokens.
func (t Theme) Palette() chart.Palette {
	return chart.Palette{
		Background:     t.Background.Dark,
		PaneBackground: t.Background.Dark,
		Text:           t.Foreground.Dark,
		TextMuted:      t.Muted.Dark,
		Grid:           t.Border.Dark,
		Weekend:        t.Weekend.Dark,
		Today:          t.Today.Dark,
		BarActive:      t.BarActive.Dark,
		BarDone:        t.BarDone.Dark,
	}
}
