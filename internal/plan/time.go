package plan

import "fmt"

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns -1 for invalid input.
func TimeToMinutes(t string) int {
	if len(t) != 5 || t[2] != ':' {
		return -1
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return -1
		}
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	if hours > 24 || mins > 59 {
		return -1
	}
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m > 24*60 {
		m = 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlaps returns true if two half-open minute intervals overlap.
// Touching endpoints do not overlap: [600,660) and [660,720) are fine.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// OverlapMinutes returns the overlapping minutes between two intervals,
// or 0 if they do not overlap.
func OverlapMinutes(s1, e1, s2, e2 int) int {
	start := max(s1, s2)
	end := min(e1, e2)
	if end <= start {
		return 0
	}
	return end - start
}
