package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleTOML(t *testing.T) {
	data := []byte(`
# theme
accent = "#89b4fa"
foreground = "#cdd6f4" # trailing comment
color2 = '#a6e3a1'
malformed line
color1 = "notacolor"
color3 = "#fff"
`)

	colors, err := parseSimpleTOML(data)
	require.NoError(t, err)

	assert.Equal(t, "#89b4fa", colors["accent"])
	assert.Equal(t, "#cdd6f4", colors["foreground"])
	assert.Equal(t, "#a6e3a1", colors["color2"])
	assert.Equal(t, "#fff", colors["color3"])
	assert.NotContains(t, colors, "color1")
}

func TestFindInlineComment(t *testing.T) {
	assert.Equal(t, -1, findInlineComment(`"#89b4fa"`))
	assert.Equal(t, 10, findInlineComment(`"#89b4fa" # note`))
	assert.Equal(t, -1, findInlineComment(`'quoted # hash'`))
}

func TestIsValidHexColor(t *testing.T) {
	assert.True(t, isValidHexColor("#abc"))
	assert.True(t, isValidHexColor("#A1B2C3"))
	assert.False(t, isValidHexColor("abc"))
	assert.False(t, isValidHexColor("#abcd"))
	assert.False(t, isValidHexColor("#gggggg"))
}

func TestLoadThemeFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colors.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
accent = "#89b4fa"
color2 = "#a6e3a1"
color3 = "#f9e2af"
`), 0o644))

	theme, err := LoadThemeFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "#89b4fa", theme.Primary.Dark)
	assert.Equal(t, "#89b4fa", theme.BarActive.Dark)
	assert.Equal(t, "#a6e3a1", theme.BarDone.Dark)
	assert.Equal(t, "#f9e2af", theme.Today.Dark)
	// Unmapped tokens keep defaults.
	assert.Equal(t, DefaultTheme().Secondary.Dark, theme.Secondary.Dark)
}

func TestLoadThemeFromFileMissing(t *testing.T) {
	_, err := LoadThemeFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestResolveThemeNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, NoColorTheme(), ResolveTheme())
}

func TestResolveThemeEnvPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colors.toml")
	require.NoError(t, os.WriteFile(path, []byte(`accent = "#123456"`), 0o644))

	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	t.Setenv("PLANLINE_THEME", path)

	theme := ResolveTheme()
	assert.Equal(t, "#123456", theme.Primary.Dark)
}

func TestPalette(t *testing.T) {
	pal := DefaultTheme().Palette()
	assert.Equal(t, DefaultTheme().BarActive.Dark, pal.BarActive)
	assert.Equal(t, DefaultTheme().Weekend.Dark, pal.Weekend)
	assert.Equal(t, DefaultTheme().Foreground.Dark, pal.Text)
}
