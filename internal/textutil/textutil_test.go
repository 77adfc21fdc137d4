package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestValidateMessage(t *testing.T) {
	cases := []struct {
		name    string
		message string
		max     int
		wantErr string
	}{
		{name: "ok", message: "hello", max: 0},
		{name: "empty", message: "", max: 0, wantErr: "cannot be empty"},
		{name: "blank", message: "   \n\t", max: 0, wantErr: "cannot be empty"},
		{name: "too long", message: strings.Repeat("a", 11), max: 10, wantErr: "maximum length of 10"},
		{name: "at limit", message: strings.Repeat("a", 10), max: 10},
	}
	for _, tc := range cases {
		err := ValidateMessage(tc.message, tc.max)
		if tc.wantErr == "" {
			if err != nil {
				t.Errorf("%s: ValidateMessage() = %v, want nil", tc.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("%s: ValidateMessage() = %v, want error containing %q", tc.name, err, tc.wantErr)
		}
	}
}

func TestValidateMessage_DefaultLimit(t *testing.T) {
	if err := ValidateMessage(strings.Repeat("a", DefaultMaxMessageLen), 0); err != nil {
		t.Fatalf("ValidateMessage() at default limit = %v, want nil", err)
	}
	if err := ValidateMessage(strings.Repeat("a", DefaultMaxMessageLen+1), 0); err == nil {
		t.Fatal("ValidateMessage() over default limit = nil, want error")
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{in: "short", max: 10, want: "short"},
		{in: "exactlyten", max: 10, want: "exactlyten"},
		{in: "this is too long", max: 10, want: "this is..."},
		{in: "tiny", max: 2, want: "tiny"},
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.max); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestTruncate_CutsOnRuneBoundary(t *testing.T) {
	in := strings.Repeat("ü", 10)
	got := Truncate(in, 8)
	if !utf8.ValidString(got) {
		t.Fatalf("Truncate(%q, 8) = %q, produced invalid UTF-8", in, got)
	}
	if want := strings.Repeat("ü", 5) + "..."; got != want {
		t.Fatalf("Truncate(%q, 8) = %q, want %q", in, got, want)
	}
}
