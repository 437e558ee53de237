package timezone

import (
	"strings"
	"time"
)

const DefaultTimezone = "UTC"

// Layouts accepted for naive (zone-less) timestamps from the upstream API.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

// Parse reads an upstream timestamp. Values carrying an offset are converted
// into loc; naive values are taken as wall-clock time in loc.
func Parse(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.In(loc), true
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// HasOffset reports whether value is an RFC 3339 timestamp with a Z or
// numeric offset.
func HasOffset(value string) bool {
	_, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(value))
	return err == nil
}

// Before reports whether a is earlier than b as instants in loc. Values
// that do not parse sort after parsed ones and among themselves by text.
func Before(a, b string, loc *time.Location) bool {
	ta, okA := Parse(a, loc)
	tb, okB := Parse(b, loc)
	if okA && okB {
		return ta.Before(tb)
	}
	if okA != okB {
		return okA
	}
	return a < b
}

// After is the newest-first counterpart of Before. Unparsed values still
// sort last.
func After(a, b string, loc *time.Location) bool {
	ta, okA := Parse(a, loc)
	tb, okB := Parse(b, loc)
	if okA && okB {
		return ta.After(tb)
	}
	if okA != okB {
		return okA
	}
	return a > b
}

// CalendarDay returns the YYYY-MM-DD day value falls on in loc, or "".
func CalendarDay(value string, loc *time.Location) string {
	t, ok := Parse(value, loc)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}
