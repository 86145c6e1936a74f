package clock

// Interval is the half-open window [Start, End).
type Interval struct {
	Start, End Time
}

// Contains reports whether Start <= t < End.
func (iv Interval) Contains(t Time) bool { return t >= iv.Start && t < iv.End }

// Find returns the index of the first interval containing t, scanning in
// declared order. When none contains t the last index is returned, so a
// time at or beyond every window resolves to the final one. An empty slice
// yields -1.
func Find(intervals []Interval, t Time) int {
	for i, iv := range intervals {
		if iv.Contains(t) {
			return i
		}
	}
	return len(intervals) - 1
}
