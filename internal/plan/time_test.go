package plan

import "testing"

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "9am", input: "09:00", want: 540},
		{name: "noon", input: "12:00", want: 720},
		{name: "11pm", input: "23:00", want: 1380},
		{name: "with minutes", input: "09:30", want: 570},
		{name: "last minute", input: "23:59", want: 1439},
		{name: "24:00 window end", input: "24:00", want: 1440},
		{name: "invalid short", input: "9:00", want: -1},
		{name: "invalid separator", input: "09.00", want: -1},
		{name: "minutes out of range", input: "09:75", want: -1},
		{name: "hours out of range", input: "25:00", want: -1},
		{name: "letters", input: "ab:cd", want: -1},
		{name: "empty", input: "", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeToMinutes(tt.input)
			if got != tt.want {
				t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMinutesToTime(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  string
	}{
		{name: "midnight", input: 0, want: "00:00"},
		{name: "9am", input: 540, want: "09:00"},
		{name: "with minutes", input: 570, want: "09:30"},
		{name: "11pm", input: 1380, want: "23:00"},
		{name: "negative clamps to zero", input: -10, want: "00:00"},
		{name: "over 24h clamps", input: 1500, want: "24:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinutesToTime(tt.input)
			if got != tt.want {
				t.Errorf("MinutesToTime(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{name: "disjoint before", s1: 540, e1: 600, s2: 660, e2: 720, want: false},
		{name: "disjoint after", s1: 660, e1: 720, s2: 540, e2: 600, want: false},
		{name: "touching endpoints", s1: 600, e1: 660, s2: 660, e2: 720, want: false},
		{name: "touching endpoints reversed", s1: 660, e1: 720, s2: 600, e2: 660, want: false},
		{name: "partial overlap", s1: 540, e1: 630, s2: 600, e2: 660, want: true},
		{name: "contained", s1: 540, e1: 720, s2: 600, e2: 660, want: true},
		{name: "identical", s1: 600, e1: 660, s2: 600, e2: 660, want: true},
		{name: "one minute overlap", s1: 600, e1: 661, s2: 660, e2: 720, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2)
			if got != tt.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v", tt.s1, tt.e1, tt.s2, tt.e2, got, tt.want)
			}
		})
	}
}

func TestOverlapMinutes(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           int
	}{
		{name: "no overlap", s1: 540, e1: 600, s2: 600, e2: 660, want: 0},
		{name: "partial", s1: 540, e1: 630, s2: 600, e2: 660, want: 30},
		{name: "contained", s1: 540, e1: 720, s2: 600, e2: 660, want: 60},
		{name: "identical", s1: 600, e1: 660, s2: 600, e2: 660, want: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverlapMinutes(tt.s1, tt.e1, tt.s2, tt.e2)
			if got != tt.want {
				t.Errorf("OverlapMinutes(%d,%d,%d,%d) = %d, want %d", tt.s1, tt.e1, tt.s2, tt.e2, got, tt.want)
			}
		})
	}
}
