// Package blockstate round-trips the chart state the host persists:
// creator identity, view mode, and filter selections. The host owns
// storage; this package owns the shape and its load-time validation.
package blockstate

import (
	"encoding/json"
	"fmt"

	"github.com/planline/planline/internal/layout"
)

// State is the saved chart state. Empty selections mean "all".
type State struct {
	Creator  string
	ViewMode layout.ViewMode
	Projects []string
	People   []string
}

// Default returns the state used when nothing was persisted.
func Default() State {
	return State{ViewMode: layout.ViewProject}
}

// persisted is the wire shape. Pointer fields distinguish "absent"
// (defaulted) from "present but wrong" (rejected).
type persisted struct {
	Creator  *string   `json:"creatorIdentity,omitempty"`
	ViewMode *string   `json:"viewMode,omitempty"`
	Projects *[]string `json:"selectedProjects,omitempty"`
	People   *[]string `json:"selectedPeople,omitempty"`
}

// Load validates and decodes persisted state. A present viewMode must
// be one of the two allowed values; present selections must be lists of
// plain strings. Failure signals the host to reject the load; absent
// fields fall back to project mode and empty (= all) selections.
func Load(data []byte) (State, error) {
	st := Default()
	if len(data) == 0 {
		return st, nil
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return State{}, fmt.Errorf("invalid persisted state: %w", err)
	}

	if p.Creator != nil {
		st.Creator = *p.Creator
	}
	if p.ViewMode != nil {
		mode, ok := layout.ParseViewMode(*p.ViewMode)
		if !ok {
			return State{}, fmt.Errorf("invalid persisted state: unknown view mode %q", *p.ViewMode)
		}
		st.ViewMode = mode
	}
	if p.Projects != nil {
		st.Projects = *p.Projects
	}
	if p.People != nil {
		st.People = *p.People
	}
	return st, nil
}

// Save encodes the state for the host to persist.
func (s State) Save() ([]byte, error) {
	p := persisted{}
	if s.Creator != "" {
		p.Creator = &s.Creator
	}
	mode := string(s.ViewMode)
	p.ViewMode = &mode
	if len(s.Projects) > 0 {
		p.Projects = &s.Projects
	}
	if len(s.People) > 0 {
		p.People = &s.People
	}
	return json.Marshal(p)
}

// IdentityProvider returns the current actor's identity label. A pure
// read; used only for the filter-edit ownership check.
type IdentityProvider func() string

// CanEditFilters reports whether the given actor may mutate filter
// selections. A state without a recorded creator is open to anyone.
func (s State) CanEditFilters(identity string) bool {
	return s.Creator == "" || s.Creator == identity
}
