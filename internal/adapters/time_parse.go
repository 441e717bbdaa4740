package adapters

import (
	"strings"
	"time"
)

// parseTimeFlexible reads failure-log timestamps. Besides RFC 3339 it
// accepts the naive local ISO form ("2024-03-01T18:22:05.123456") older
// logs were written with; those are taken as UTC.
func parseTimeFlexible(value string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
