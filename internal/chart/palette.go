package chart

// Palette is the set of named color tokens a painter needs. Values are
// opaque color strings resolved by the rendering environment; the
// defaults below are the hard-coded fallbacks used when nothing
// resolves.
type Palette struct {
	Background     string
	PaneBackground string
	Text           string
	TextMuted      string
	Grid           string
	Weekend        string
	Today          string
	BarActive      string
	BarDone        string
}

// DefaultPalette returns the fallback tokens.
func DefaultPalette() Palette {
	return Palette{
		Background:     "#1f1f1f",
		PaneBackground: "#262626",
		Text:           "#e8eaed",
		TextMuted:      "#9aa0a6",
		Grid:           "#3c4043",
		Weekend:        "#2a2d31",
		Today:          "#3d3520",
		BarActive:      "#8ab4f8",
		BarDone:        "#81c995",
	}
}

// withDefaults fills any unresolved token from the fallback palette.
func (p Palette) withDefaults() Palette {
	def := DefaultPalette()
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return Palette{
		Background:     pick(p.Background, def.Background),
		PaneBackground: pick(p.PaneBackground, def.PaneBackground),
		Text:           pick(p.Text, def.Text),
		TextMuted:      pick(p.TextMuted, def.TextMuted),
		Grid:           pick(p.Grid, def.Grid),
		Weekend:        pick(p.Weekend, def.Weekend),
		Today:          pick(p.Today, def.Today),
		BarActive:      pick(p.BarActive, def.BarActive),
		BarDone:        pick(p.BarDone, def.BarDone),
	}
}
