// Package shared provides small helpers used by more than one adapter.
package shared

import (
	"fmt"
	"strings"
)

const maxErrorBody = 200

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// HTTPStatusErrorWithBody creates a formatted error that includes the
// start of the response body for non-2xx HTTP responses.
func HTTPStatusErrorWithBody(status int, url string, body string) error {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return HTTPStatusError(status, url)
	}
	return fmt.Errorf("status=%d url=%s response=%s", status, url, Truncate(trimmed, maxErrorBody))
}

// Truncate shortens value to at most limit bytes, marking the cut with "...".
func Truncate(value string, limit int) string {
	if limit <= 0 || len(value) <= limit {
		return value
	}
	if limit <= 3 {
		return value[:limit]
	}
	return value[:limit-3] + "..."
}
