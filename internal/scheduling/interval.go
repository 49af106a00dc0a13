package scheduling

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, duration time.Duration) Interval {
	return Interval{Start: start, End: start.Add(duration)}
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Contains reports whether other lies fully inside i. Shared endpoints count as inside.
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Overlaps is the only overlap test used by both slot discovery and booking
// validation. Touching intervals (a.End == b.Start) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Blocking returns the interval among busy that overlaps candidate and
// ends last, so a scan can jump past every blocking interval at once.
func Blocking(candidate Interval, busy []Interval) (Interval, bool) {
	var (
		blocking Interval
		found    bool
	)
	for _, b := range busy {
		if !Overlaps(candidate, b) {
			continue
		}
		if !found || b.End.After(blocking.End) {
			blocking = b
			found = true
		}
	}
	return blocking, found
}

// OverlapsAny reports whether candidate overlaps at least one of busy.
func OverlapsAny(candidate Interval, busy []Interval) bool {
	_, found := Blocking(candidate, busy)
	return found
}
