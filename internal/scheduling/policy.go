package scheduling

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

const dateLayout = "2006-01-02"

var (
	ErrNonWorkingDay       = errors.New("date is not a working day")
	ErrPast                = errors.New("start time is in the past")
	ErrOutsideWorkingHours = errors.New("interval is outside working hours")
	ErrLunchBreak          = errors.New("interval overlaps the lunch break")
)

// offsetLayouts are accepted for instants carrying Z or an explicit offset,
// extended (-03:00) or basic (-0300), with or without seconds.
var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04Z0700",
}

// naiveLayouts are accepted for instants without an offset; they are read in
// the policy timezone.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Clock is a time of day in minutes after midnight.
type Clock int

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Date is a civil date with no timezone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// DayWindow is the bookable span of one working day.
type DayWindow struct {
	Date  Date
	Work  Interval
	Lunch Interval
}

func (w DayWindow) HasLunch() bool {
	return w.Lunch.End.After(w.Lunch.Start)
}

func (w DayWindow) overlapsLunch(candidate Interval) bool {
	return w.HasLunch() && Overlaps(candidate, w.Lunch)
}

type PolicyConfig struct {
	Timezone    string
	WorkStart   string
	WorkEnd     string
	LunchStart  string
	LunchEnd    string
	WorkingDays []string
	SlotStep    time.Duration
}

func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		Timezone:    "America/Sao_Paulo",
		WorkStart:   "08:00",
		WorkEnd:     "17:00",
		LunchStart:  "11:45",
		LunchEnd:    "12:00",
		WorkingDays: []string{"mon", "tue", "wed", "thu", "fri", "sat"},
		SlotStep:    15 * time.Minute,
	}
}

// Policy holds the working calendar. It is immutable after construction and
// safe for concurrent use.
type Policy struct {
	location    *time.Location
	workStart   Clock
	workEnd     Clock
	lunchStart  Clock
	lunchEnd    Clock
	workingDays [7]bool
	step        time.Duration
}

func NewPolicy(cfg PolicyConfig) (*Policy, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	p := &Policy{location: loc, step: cfg.SlotStep}

	if p.workStart, err = ParseClock(cfg.WorkStart); err != nil {
		return nil, err
	}
	if p.workEnd, err = ParseClock(cfg.WorkEnd); err != nil {
		return nil, err
	}
	if p.lunchStart, err = ParseClock(cfg.LunchStart); err != nil {
		return nil, err
	}
	if p.lunchEnd, err = ParseClock(cfg.LunchEnd); err != nil {
		return nil, err
	}

	if p.workStart >= p.workEnd {
		return nil, fmt.Errorf("work start %s must be before work end %s", p.workStart, p.workEnd)
	}
	if p.lunchStart > p.lunchEnd {
		return nil, fmt.Errorf("lunch start %s must not be after lunch end %s", p.lunchStart, p.lunchEnd)
	}
	if p.lunchStart < p.lunchEnd && (p.lunchStart < p.workStart || p.lunchEnd > p.workEnd) {
		return nil, fmt.Errorf("lunch break %s-%s must lie within working hours %s-%s",
			p.lunchStart, p.lunchEnd, p.workStart, p.workEnd)
	}
	if p.step <= 0 {
		return nil, fmt.Errorf("slot step must be positive, got %s", p.step)
	}

	for _, name := range cfg.WorkingDays {
		day, err := parseWeekday(name)
		if err != nil {
			return nil, err
		}
		p.workingDays[day] = true
	}
	if p.workingDays == [7]bool{} {
		return nil, errors.New("at least one working day is required")
	}

	return p, nil
}

func MustPolicy(cfg PolicyConfig) *Policy {
	p, err := NewPolicy(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Policy) Location() *time.Location {
	return p.location
}

func (p *Policy) Step() time.Duration {
	return p.step
}

func (p *Policy) IsWorkingDay(d Date) bool {
	return p.workingDays[d.Weekday()]
}

// Normalize moves t into the policy timezone without changing the instant.
func (p *Policy) Normalize(t time.Time) time.Time {
	return t.In(p.location)
}

func (p *Policy) DateOf(t time.Time) Date {
	t = p.Normalize(t)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (p *Policy) At(d Date, c Clock) time.Time {
	return time.Date(d.Year, d.Month, d.Day, int(c)/60, int(c)%60, 0, 0, p.location)
}

// StartOfDay and EndOfDay bound the civil date d in the policy timezone as [start, end).
func (p *Policy) StartOfDay(d Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, p.location)
}

func (p *Policy) EndOfDay(d Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, p.location)
}

// Window returns the working window of d. Non-working days yield false.
func (p *Policy) Window(d Date) (DayWindow, bool) {
	if !p.IsWorkingDay(d) {
		return DayWindow{}, false
	}
	w := DayWindow{
		Date: d,
		Work: Interval{Start: p.At(d, p.workStart), End: p.At(d, p.workEnd)},
	}
	if p.lunchStart < p.lunchEnd {
		w.Lunch = Interval{Start: p.At(d, p.lunchStart), End: p.At(d, p.lunchEnd)}
	}
	return w, true
}

// ParseInstant reads an ISO-8601 instant. Inputs with an explicit offset keep
// their instant; naive inputs are read in the policy timezone. The result is
// always expressed in the policy timezone.
func (p *Policy) ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return p.Normalize(t), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, p.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid instant %q: expected ISO-8601", s)
}

// CheckCandidate validates a requested booking interval against the calendar
// alone: working day, not in the past, inside working hours, clear of lunch.
// Existing appointments are not consulted here.
func (p *Policy) CheckCandidate(start time.Time, duration time.Duration, now time.Time) error {
	start = p.Normalize(start)
	candidate := NewInterval(start, duration)

	w, ok := p.Window(p.DateOf(start))
	if !ok {
		return ErrNonWorkingDay
	}
	if start.Before(now) {
		return ErrPast
	}
	if !w.Work.Contains(candidate) {
		return ErrOutsideWorkingHours
	}
	if w.overlapsLunch(candidate) {
		return ErrLunchBreak
	}
	return nil
}

func parseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sun", "sunday":
		return time.Sunday, nil
	case "mon", "monday":
		return time.Monday, nil
	case "tue", "tuesday":
		return time.Tuesday, nil
	case "wed", "wednesday":
		return time.Wednesday, nil
	case "thu", "thursday":
		return time.Thursday, nil
	case "fri", "friday":
		return time.Friday, nil
	case "sat", "saturday":
		return time.Saturday, nil
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}
