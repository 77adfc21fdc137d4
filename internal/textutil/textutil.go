// Package textutil has small helpers for preparing user text before it goes
// to the API and for trimming long strings in display output.
package textutil

import (
	"fmt"
	"strings"
)

// DefaultMaxMessageLen caps outgoing message length in ValidateMessage when
// the caller passes a non-positive max.
const DefaultMaxMessageLen = 10000

// ValidateMessage rejects blank messages and messages longer than max
// characters. This is a stricter check than the request model itself
// enforces; callers opt in per call site.
func ValidateMessage(message string, max int) error {
	if max <= 0 {
		max = DefaultMaxMessageLen
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if len(message) > max {
		return fmt.Errorf("message exceeds maximum length of %d characters", max)
	}
	return nil
}

// Truncate shortens s to at most max characters, marking the cut with an
// ellipsis. Counting and cutting happen on rune boundaries so multi-byte
// text never truncates into invalid UTF-8.
func Truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
