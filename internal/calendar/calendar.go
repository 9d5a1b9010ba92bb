// Package calendar converts between calendar dates and comparable
// integer day keys used for timeline math.
//
// A day key encodes a date as y*10000 + m*100 + d, so numeric order over
// keys equals chronological order for all valid dates. Everything that
// sorts, spans, or enumerates days relies on that single invariant.
package calendar

import (
	"fmt"
	"regexp"
	"time"
)

var datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// Valid reports whether (y, m, d) names a real calendar date.
// Overflowed values are rejected rather than normalized: (2024, 2, 30)
// is invalid, not coerced to March 1.
func Valid(y, m, d int) bool {
	if y < 1 || m < 1 || m > 12 || d < 1 || d > 31 {
		return false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Year() == y && int(t.Month()) == m && t.Day() == d
}

// Key returns the integer day key for (y, m, d). The caller is expected
// to have validated the triple; Key itself does no range checking.
func Key(y, m, d int) int {
	return y*10000 + m*100 + d
}

// Split decomposes a day key into (y, m, d). ok is false when the key
// does not round-trip through a valid calendar date.
func Split(key int) (y, m, d int, ok bool) {
	y = key / 10000
	m = key / 100 % 100
	d = key % 100
	if !Valid(y, m, d) {
		return 0, 0, 0, false
	}
	return y, m, d, true
}

// Format renders a day key as "YYYY-MM-DD". Malformed keys render as the
// empty string.
func Format(key int) string {
	y, m, d, ok := Split(key)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// FormatShort renders the month-day portion of a day key ("MM-DD"),
// used for axis tick labels. Malformed keys render as the empty string.
func FormatShort(key int) string {
	_, m, d, ok := Split(key)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%02d-%02d", m, d)
}

// Parse parses a strict "YYYY-MM-DD" string into a day key. Anything
// else, including dates that do not exist, fails with ok=false.
func Parse(s string) (key int, ok bool) {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	// Widths are fixed by the pattern, so Atoi cannot fail here.
	y := atoi(m[1])
	mo := atoi(m[2])
	d := atoi(m[3])
	if !Valid(y, mo, d) {
		return 0, false
	}
	return Key(y, mo, d), true
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// Time converts a valid day key to a time.Time at midnight UTC.
func Time(key int) (time.Time, bool) {
	y, m, d, ok := Split(key)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
}

// FromTime returns the day key for t in its own location.
func FromTime(t time.Time) int {
	y, m, d := t.Date()
	return Key(y, int(m), d)
}

// Today returns the current day key.
func Today() int {
	return FromTime(time.Now())
}

// Weekday returns the weekday of a valid day key. Malformed keys report
// as Sunday; callers that care should validate first.
func Weekday(key int) time.Weekday {
	t, ok := Time(key)
	if !ok {
		return time.Sunday
	}
	return t.Weekday()
}

// IsWeekend reports whether the day key falls on Saturday or Sunday.
func IsWeekend(key int) bool {
	wd := Weekday(key)
	return wd == time.Saturday || wd == time.Sunday
}

// Days enumerates every day key from min to max, inclusive both ends,
// spanning month, year, and leap-day boundaries. The result is empty if
// either bound is malformed or min is after max.
func Days(minKey, maxKey int) []int {
	start, ok := Time(minKey)
	if !ok {
		return nil
	}
	end, ok := Time(maxKey)
	if !ok || minKey > maxKey {
		return nil
	}

	var keys []int
	for t := start; !t.After(end); t = t.AddDate(0, 0, 1) {
		keys = append(keys, FromTime(t))
	}
	return keys
}
