package scheduling

import "time"

type move int

const (
	moveAccept move = iota
	moveSkipLunch
	moveSkipBooking
	moveAdvance
)

// scan walks candidate starts forward through one working window. The cursor
// only ever moves forward, so the walk terminates once cursor+duration passes
// the end of the window.
type scan struct {
	window   DayWindow
	duration time.Duration
	step     time.Duration
	booked   []Interval
	now      time.Time
}

func (s scan) decide(cursor time.Time) (move, time.Time) {
	candidate := NewInterval(cursor, s.duration)

	if s.window.overlapsLunch(candidate) {
		return moveSkipLunch, s.window.Lunch.End
	}
	if b, ok := Blocking(candidate, s.booked); ok {
		return moveSkipBooking, b.End
	}
	if cursor.Before(s.now) {
		return moveAdvance, cursor.Add(s.step)
	}
	return moveAccept, cursor.Add(s.step)
}

func (s scan) run() []time.Time {
	slots := make([]time.Time, 0)
	if s.duration <= 0 || s.step <= 0 {
		return slots
	}

	cursor := s.window.Work.Start
	for !cursor.Add(s.duration).After(s.window.Work.End) {
		m, next := s.decide(cursor)
		if m == moveAccept {
			slots = append(slots, cursor)
		}
		cursor = next
	}
	return slots
}

// Slots lists the start times on date d at which a booking of the given
// duration fits: inside working hours, clear of lunch, clear of every booked
// interval and not before now. Non-working days and past dates give an empty
// list. The result is ascending.
func (p *Policy) Slots(d Date, duration time.Duration, booked []Interval, now time.Time) []time.Time {
	w, ok := p.Window(d)
	if !ok || d.Before(p.DateOf(now)) {
		return make([]time.Time, 0)
	}
	return scan{
		window:   w,
		duration: duration,
		step:     p.step,
		booked:   booked,
		now:      p.Normalize(now),
	}.run()
}
