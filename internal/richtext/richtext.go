// Package richtext reduces rich-text record fields to plain text.
// Record sources hand back lightly HTML-flavored strings; the timeline
// only ever displays plain labels.
package richtext

import (
	"regexp"
	"strings"
)

var (
	brPattern  = regexp.MustCompile(`(?i)<br\s*/?\s*>`)
	divPattern = regexp.MustCompile(`(?i)</(?:div|p)>`)
	tagPattern = regexp.MustCompile(`<[^>]+>`)
)

// PlainText strips simple markup from a record field:
// <br>-like tags and block closers become newlines, non-breaking spaces
// become plain spaces, remaining tags are dropped, entities are
// unescaped, and the result is trimmed. Total: any input yields a
// plain string, never an error.
func PlainText(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = brPattern.ReplaceAllString(s, "\n")
	s = divPattern.ReplaceAllString(s, "\n")
	s = tagPattern.ReplaceAllString(s, "")

	s = Unescape(s)

	return strings.TrimSpace(s)
}

// Unescape converts common HTML entities back to their characters.
// &nbsp; becomes a plain space so people lists split cleanly.
func Unescape(s string) string {
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", "\"")
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&apos;", "'")
	s = strings.ReplaceAll(s, "&amp;", "&")
	return s
}

// Truncate shortens a label to at most budget runes, appending an
// ellipsis marker when anything was cut.
func Truncate(s string, budget int) string {
	if budget <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget]) + "…"
}
