package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit           key.Binding
	Refresh        key.Binding
	ViewMode       key.Binding
	FilterProjects key.Binding
	FilterPeople   key.Binding
	ZoomIn         key.Binding
	ZoomOut        key.Binding
	ZoomReset      key.Binding
	Left           key.Binding
	Right          key.Binding
	Up             key.Binding
	Down           key.Binding
	Home           key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c")),
		Refresh:        key.NewBinding(key.WithKeys("r")),
		ViewMode:       key.NewBinding(key.WithKeys("v")),
		FilterProjects: key.NewBinding(key.WithKeys("p")),
		FilterPeople:   key.NewBinding(key.WithKeys("s")),
		ZoomIn:         key.NewBinding(key.WithKeys("+", "=")),
		ZoomOut:        key.NewBinding(key.WithKeys("-", "_")),
		ZoomReset:      key.NewBinding(key.WithKeys("0")),
		Left:           key.NewBinding(key.WithKeys("left", "h")),
		Right:          key.NewBinding(key.WithKeys("right", "l")),
		Up:             key.NewBinding(key.WithKeys("up", "k")),
		Down:           key.NewBinding(key.WithKeys("down", "j")),
		Home:           key.NewBinding(key.WithKeys("home", "g")),
	}
}
