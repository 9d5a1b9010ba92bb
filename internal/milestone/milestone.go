// Package milestone defines the normalized timeline record and the
// normalizer that produces it from loosely-typed source records.
package milestone

import (
	"strings"

	"github.com/planline/planline/internal/calendar"
	"github.com/planline/planline/internal/richtext"
)

// Record is one raw record as handed back by a record source. Text
// fields may carry simple markup; dates are loose strings; either date
// field may be absent for single-day milestones.
type Record struct {
	RecordID  string `json:"record_id" yaml:"record_id"`
	BlockID   string `json:"block_id,omitempty" yaml:"block_id,omitempty"`
	Content   string `json:"content" yaml:"content"`
	Project   string `json:"project" yaml:"project"`
	People    string `json:"people" yaml:"people"`
	StartTime string `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	Time      string `json:"time,omitempty" yaml:"time,omitempty"`
	Completed bool   `json:"completed,omitempty" yaml:"completed,omitempty"`
}

// Origin locates a record in the external store. Layout never reads it;
// it rides along for tooltips and debugging.
type Origin struct {
	BlockID  string `json:"block_id,omitempty"`
	RecordID string `json:"record_id"`
}

// Item is one normalized milestone. Items are immutable after
// normalization; the whole collection is replaced on refresh.
type Item struct {
	Content     string   `json:"content"`
	ProjectName string   `json:"project"`
	People      []string `json:"people"`
	StartKey    int      `json:"start_key"`
	EndKey      int      `json:"end_key"`
	Completed   bool     `json:"completed"`
	Origin      Origin   `json:"origin"`
}

// SpanStart returns the chronologically earlier end of the item's span.
func (it Item) SpanStart() int {
	return min(it.StartKey, it.EndKey)
}

// SpanEnd returns the chronologically later end of the item's span.
func (it Item) SpanEnd() int {
	return max(it.StartKey, it.EndKey)
}

// Normalize converts one raw record into an Item. ok is false when the
// record has no usable dates; such records are dropped without their
// own error surface, only the aggregate count is user-visible.
func Normalize(rec Record) (Item, bool) {
	start := strings.TrimSpace(richtext.PlainText(rec.StartTime))
	end := strings.TrimSpace(richtext.PlainText(rec.Time))

	// A single-day milestone may carry only one of the two dates.
	if start == "" {
		start = end
	}
	if end == "" {
		end = start
	}
	if start == "" {
		return Item{}, false
	}

	startKey, ok := calendar.Parse(start)
	if !ok {
		return Item{}, false
	}
	endKey, ok := calendar.Parse(end)
	if !ok {
		return Item{}, false
	}

	return Item{
		Content:     richtext.PlainText(rec.Content),
		ProjectName: richtext.PlainText(rec.Project),
		People:      SplitPeople(richtext.PlainText(rec.People)),
		StartKey:    startKey,
		EndKey:      endKey,
		Completed:   rec.Completed,
		Origin:      Origin{BlockID: rec.BlockID, RecordID: rec.RecordID},
	}, true
}

// NormalizeAll normalizes a batch, dropping invalid records and
// preserving source order. Source order is the tiebreak for all later
// sorting, so it must survive intact.
func NormalizeAll(recs []Record) []Item {
	items := make([]Item, 0, len(recs))
	for _, rec := range recs {
		if it, ok := Normalize(rec); ok {
			items = append(items, it)
		}
	}
	return items
}

// peopleSeparator matches any accepted delimiter between names:
// ASCII comma, newline, full-width comma, and both semicolon forms.
func peopleSeparator(r rune) bool {
	switch r {
	case ',', '\n', '，', ';', '；':
		return true
	}
	return false
}

// SplitPeople splits a delimited people field into a deduplicated list,
// preserving first-seen order.
func SplitPeople(s string) []string {
	parts := strings.FieldsFunc(s, peopleSeparator)

	var people []string
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		people = append(people, p)
	}
	return people
}
