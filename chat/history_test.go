package chat

import (
	"errors"
	"strings"
	"testing"
)

func TestHistoryAdd_EvictsOldestBeyondBound(t *testing.T) {
	h := NewHistory(3)
	for _, content := range []string{"m1", "m2", "m3", "m4", "m5"} {
		h.Add(RoleUser, content)
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	want := "user: m3\nuser: m4\nuser: m5"
	if got := h.Context(); got != want {
		t.Fatalf("Context() = %q, want %q", got, want)
	}
}

func TestHistoryAdd_RejectsInvalidRole(t *testing.T) {
	h := NewHistory(3)
	err := h.Add(Role("hacker"), "payload")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Add() with invalid role = %v, want *ValidationError", err)
	}
	if h.Len() != 0 {
		t.Fatalf("Len() = %d, rejected message must not be retained", h.Len())
	}
	if got := h.Context(); got != "" {
		t.Fatalf("Context() = %q, want empty after rejected Add", got)
	}
}

func TestHistoryAdd_AcceptsAllowedRoles(t *testing.T) {
	h := NewHistory(3)
	for _, role := range []Role{RoleUser, RoleAssistant, RoleSystem} {
		if err := h.Add(role, "x"); err != nil {
			t.Errorf("Add(%q) = %v, want nil", role, err)
		}
	}
}

func TestHistoryContext_EmptyYieldsEmptyString(t *testing.T) {
	h := NewHistory(3)
	if got := h.Context(); got != "" {
		t.Fatalf("Context() = %q, want empty", got)
	}
}

func TestHistoryContext_RendersRolesChronologically(t *testing.T) {
	h := NewHistory(10)
	h.Add(RoleUser, "hi")
	h.Add(RoleAssistant, "hello")
	h.Add(RoleSystem, "note")
	want := "user: hi\nassistant: hello\nsystem: note"
	if got := h.Context(); got != want {
		t.Fatalf("Context() = %q, want %q", got, want)
	}
}

func TestHistoryClear_KeepsBound(t *testing.T) {
	h := NewHistory(2)
	h.Add(RoleUser, "hi")
	h.Clear()
	if h.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", h.Len())
	}
	if h.Max() != 2 {
		t.Fatalf("Max() after Clear = %d, want 2", h.Max())
	}
}

func TestHistoryMessages_ReturnsCopy(t *testing.T) {
	h := NewHistory(5)
	h.Add(RoleUser, "hi")
	msgs := h.Messages()
	msgs[0].Content = "mutated"
	if h.Messages()[0].Content != "hi" {
		t.Fatal("Messages() must return a copy, internal state was mutated")
	}
}

func TestHistoryMessages_HaveIDsAndTimestamps(t *testing.T) {
	h := NewHistory(5)
	h.Add(RoleUser, "hi")
	m := h.Messages()[0]
	if strings.TrimSpace(m.ID) == "" {
		t.Fatal("message ID is empty")
	}
	if m.CreatedAt.IsZero() {
		t.Fatal("message CreatedAt is zero")
	}
}

func TestNewHistory_NonPositiveFallsBackToDefault(t *testing.T) {
	if got := NewHistory(0).Max(); got != DefaultMaxHistory {
		t.Fatalf("Max() = %d, want %d", got, DefaultMaxHistory)
	}
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "user", want: RoleUser},
		{in: "assistant", want: RoleAssistant},
		{in: "system", want: RoleSystem},
		{in: "tool", wantErr: true},
		{in: "", wantErr: true},
		{in: "User", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRole(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseRole(%q) = %v, %v, want %v", tc.in, got, err, tc.want)
		}
	}
}
