package filter

import (
	"os"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collation sorts option lists and group labels with locale-aware
// ordering instead of byte order.
type Collation struct {
	tag language.Tag
	col *collate.Collator
}

// DetectCollation resolves the user's locale from environment variables,
// falling back to en-US when nothing is set or parseable.
func DetectCollation() *Collation {
	raw := os.Getenv("LC_ALL")
	if raw == "" {
		raw = os.Getenv("LC_COLLATE")
	}
	if raw == "" {
		raw = os.Getenv("LANG")
	}
	return NewCollation(raw)
}

// NewCollation creates a Collation from a POSIX locale string
// (e.g. "zh_CN.UTF-8") or BCP 47 tag (e.g. "zh-CN").
func NewCollation(raw string) *Collation {
	// Strip encoding suffix: "en_US.UTF-8" → "en_US"
	if idx := strings.IndexByte(raw, '.'); idx != -1 {
		raw = raw[:idx]
	}
	// POSIX uses underscore, BCP 47 uses dash
	raw = strings.ReplaceAll(raw, "_", "-")

	tag, _ := language.Parse(raw)
	if tag == language.Und {
		tag = language.AmericanEnglish
	}

	return &Collation{tag: tag, col: collate.New(tag)}
}

// Tag returns the resolved language tag.
func (c *Collation) Tag() language.Tag {
	return c.tag
}

// Sort orders strings in place by the locale's collation.
func (c *Collation) Sort(ss []string) {
	c.col.SortStrings(ss)
}

// Less reports whether a collates before b.
func (c *Collation) Less(a, b string) bool {
	return c.col.CompareString(a, b) < 0
}
