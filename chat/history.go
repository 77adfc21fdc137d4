package chat

import "strings"

// DefaultMaxHistory bounds the conversation window when no explicit size is
// configured.
const DefaultMaxHistory = 10

// History is an append-only, size-bounded log of conversation messages.
// When an append would exceed the bound, the oldest entries are dropped so
// only the most recent max entries survive, in insertion order.
//
// History does no internal locking. It has a single logical writer (the
// owning Client); callers that share one across goroutines must serialize
// access themselves.
type History struct {
	messages []Message
	max      int
}

// NewHistory returns an empty history bounded to max messages. Non-positive
// max falls back to DefaultMaxHistory.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultMaxHistory
	}
	return &History{max: max}
}

// Add appends a message, evicting from the front when the bound is exceeded.
// The role is validated at construction time; anything outside
// user|assistant|system returns a *ValidationError and leaves the history
// untouched.
func (h *History) Add(role Role, content string) error {
	r, err := ParseRole(string(role))
	if err != nil {
		return err
	}
	h.messages = append(h.messages, newMessage(r, content))
	if len(h.messages) > h.max {
		h.messages = h.messages[len(h.messages)-h.max:]
	}
	return nil
}

// Context renders the retained messages as newline-joined "role: content"
// lines in chronological order. An empty history yields "".
func (h *History) Context() string {
	if len(h.messages) == 0 {
		return ""
	}
	lines := make([]string, 0, len(h.messages))
	for _, m := range h.messages {
		lines = append(lines, string(m.Role)+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}

// Messages returns a copy of the retained messages in insertion order.
func (h *History) Messages() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len reports the number of retained messages.
func (h *History) Len() int { return len(h.messages) }

// Max reports the history bound.
func (h *History) Max() int { return h.max }

// Clear drops all retained messages. The bound is unchanged.
func (h *History) Clear() { h.messages = nil }
