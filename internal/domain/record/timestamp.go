package record

import (
	"fmt"
	"regexp"
	"time"
)

// Timestamp layouts of the submission wire format: ISO-8601 UTC with an
// optional 3-digit fraction and a literal Z.
const (
	LayoutSeconds = "2006-01-02T15:04:05Z"
	LayoutMillis  = "2006-01-02T15:04:05.000Z"
)

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{3})?Z$`)

// ValidTimestampFormat reports whether s matches the wire profile exactly.
// This is the format check; ParseTimestamp decides parseability.
func ValidTimestampFormat(s string) bool {
	return timestampPattern.MatchString(s)
}

// ParseTimestamp parses a submission timestamp into an absolute instant.
// The two profile layouts are preferred; RFC 3339 is accepted as a
// fallback for historical files written before the profile was pinned.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{LayoutMillis, LayoutSeconds, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DDTHH:MM:SS[.SSS]Z)", ErrTimestampUnparseable, s)
}

// FormatTimestamp renders an instant in the millisecond wire profile.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(LayoutMillis)
}

// Partition derives the (year, month) storage partition of an instant.
func Partition(t time.Time) (year, month int) {
	return t.UTC().Year(), int(t.UTC().Month())
}
