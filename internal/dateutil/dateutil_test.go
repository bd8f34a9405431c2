package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-12")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.September || d.Day() != 12 {
		t.Errorf("got %v", d)
	}

	for _, bad := range []string{"", "12/09/2026", "2026-9-12", "september 12"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("ParseDate(%q): error = %v, want ErrInvalidDateFormat", bad, err)
		}
	}
}

func TestTripDay(t *testing.T) {
	start := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	if got := TripDay(start, 0); !got.Equal(start) {
		t.Errorf("day 0 = %v", got)
	}
	if got := TripDay(start, 4); got.Day() != 16 {
		t.Errorf("day 4 = %v, want Sep 16", got)
	}
	// Crosses a month boundary.
	if got := TripDay(start, 20); got.Month() != time.October || got.Day() != 2 {
		t.Errorf("day 20 = %v, want Oct 2", got)
	}
}

func TestParseStartDate(t *testing.T) {
	// A Friday.
	now := time.Date(2026, 9, 11, 17, 30, 0, 0, time.UTC)

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2026-09-12", "2026-09-12", false},
		{"today", "2026-09-11", false},
		{"Today", "2026-09-11", false},
		{"tomorrow", "2026-09-12", false},
		{"next-week", "2026-09-18", false},
		{"saturday", "2026-09-12", false},
		{"friday", "2026-09-18", false}, // same weekday jumps a week
		{"next-monday", "2026-09-14", false},
		{"  monday  ", "2026-09-14", false},
		{"next-someday", "", true},
		{"someday", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStartDate(tt.input, now)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseStartDate(%q) = %v, want error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStartDate(%q): %v", tt.input, err)
			continue
		}
		if got.Format("2006-01-02") != tt.want {
			t.Errorf("ParseStartDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestTruncateToDay(t *testing.T) {
	got := TruncateToDay(time.Date(2026, 9, 11, 17, 30, 45, 12, time.UTC))
	want := time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
