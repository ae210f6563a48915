package core

import (
	"strings"
	"time"
)

// DateLayout is how calendar dates are stored in documents.
const DateLayout = "2006-01-02"

// NowFunc is mockable.
var NowFunc = time.Now

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Today returns the current UTC date, formatted as DateLayout.
func Today() string {
	return NowFunc().UTC().Format(DateLayout)
}
