package utils

import (
	"testing"
	"time"
)

func TestDTRDate(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"morning clock-in", time.Date(2026, 3, 2, 8, 0, 0, 0, ManilaTZ), "2026-03-02"},
		{"just after rollover", time.Date(2026, 3, 2, 6, 0, 0, 0, ManilaTZ), "2026-03-02"},
		{"overnight clock-out", time.Date(2026, 3, 3, 1, 30, 0, 0, ManilaTZ), "2026-03-02"},
		{"just before rollover", time.Date(2026, 3, 3, 5, 59, 0, 0, ManilaTZ), "2026-03-02"},
		{"utc input converted", time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC), "2026-03-02"},
	}

	for _, tc := range cases {
		if got := DTRDate(tc.in); got != tc.want {
			t.Errorf("%s: DTRDate(%v) = %s, want %s", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestParseISOTime(t *testing.T) {
	got, err := ParseISOTime("2026-03-02T08:01:00+08:00")
	if err != nil {
		t.Fatalf("ParseISOTime returned error: %v", err)
	}
	if !got.Equal(time.Date(2026, 3, 2, 8, 1, 0, 0, ManilaTZ)) {
		t.Errorf("unexpected time: %v", got)
	}

	if _, err := ParseISOTime(""); err == nil {
		t.Error("expected error for empty string")
	}
	if _, err := ParseISOTime("not-a-time"); err == nil {
		t.Error("expected error for garbage input")
	}
}
