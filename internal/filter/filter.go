// Package filter derives the project/person option sets from the
// current record collection and applies compound filtering.
//
// Selection semantics: an empty selection always means "no restriction",
// never "exclude everything". Selections that refer to values no longer
// present are pruned whenever options are recomputed, so stale state
// degrades to "all" instead of silently hiding every row.
package filter

import (
	"github.com/planline/planline/internal/milestone"
)

// Fallbacks names the buckets used for items with no project or no
// people. Kept as data rather than literals so presentation language
// stays an external concern.
type Fallbacks struct {
	Project string
	Person  string
}

// DefaultFallbacks returns the English fallback tokens.
func DefaultFallbacks() Fallbacks {
	return Fallbacks{Project: "unnamed project", Person: "unassigned"}
}

// Options holds the selectable values derived from the visible
// collection, each sorted by locale collation.
type Options struct {
	Projects []string
	People   []string
}

// ProjectLabel returns the item's grouping label on the project axis.
func ProjectLabel(it milestone.Item, fb Fallbacks) string {
	if it.ProjectName == "" {
		return fb.Project
	}
	return it.ProjectName
}

// PeopleLabels returns the item's grouping labels on the person axis.
// Items with nobody assigned land in the single fallback bucket.
func PeopleLabels(it milestone.Item, fb Fallbacks) []string {
	if len(it.People) == 0 {
		return []string{fb.Person}
	}
	return it.People
}

// Derive computes the option sets from the current collection.
func Derive(items []milestone.Item, fb Fallbacks, col *Collation) Options {
	projectSeen := make(map[string]struct{})
	peopleSeen := make(map[string]struct{})
	var projects, people []string

	for _, it := range items {
		p := ProjectLabel(it, fb)
		if _, dup := projectSeen[p]; !dup {
			projectSeen[p] = struct{}{}
			projects = append(projects, p)
		}
		for _, name := range PeopleLabels(it, fb) {
			if _, dup := peopleSeen[name]; !dup {
				peopleSeen[name] = struct{}{}
				people = append(people, name)
			}
		}
	}

	col.Sort(projects)
	col.Sort(people)
	return Options{Projects: projects, People: people}
}

// Prune keeps only selected values still present in options, preserving
// selection order. Pruning to empty flips the set back to "all".
func Prune(selected, options []string) []string {
	if len(selected) == 0 {
		return nil
	}
	valid := make(map[string]struct{}, len(options))
	for _, o := range options {
		valid[o] = struct{}{}
	}

	var kept []string
	for _, s := range selected {
		if _, ok := valid[s]; ok {
			kept = append(kept, s)
		}
	}
	return kept
}

// Apply returns the items passing both filter axes: project must match
// when a project selection exists, and at least one of the item's
// people must match when a people selection exists.
func Apply(items []milestone.Item, selProjects, selPeople []string, fb Fallbacks) []milestone.Item {
	if len(selProjects) == 0 && len(selPeople) == 0 {
		return items
	}

	projects := toSet(selProjects)
	people := toSet(selPeople)

	var visible []milestone.Item
	for _, it := range items {
		if len(projects) > 0 {
			if _, ok := projects[ProjectLabel(it, fb)]; !ok {
				continue
			}
		}
		if len(people) > 0 && !anyIn(PeopleLabels(it, fb), people) {
			continue
		}
		visible = append(visible, it)
	}
	return visible
}

func toSet(ss []string) map[string]struct{} {
	if len(ss) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		set[s] = struct{}{}
	}
	return set
}

func anyIn(ss []string, set map[string]struct{}) bool {
	for _, s := range ss {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}
