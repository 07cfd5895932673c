package httputil

import (
	"fmt"
	"time"
)

// timestampLayouts are tried in order; all of them are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a filter timestamp. Values without an offset are UTC.
// The result is always in UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: expected RFC3339, YYYY-MM-DD HH:MM:SS or YYYY-MM-DD", raw)
}
