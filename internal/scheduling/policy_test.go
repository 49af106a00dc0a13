package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-19 is a Monday.
var monday = Date{Year: 2026, Month: time.October, Day: 19}

func defaultPolicy(t *testing.T) *Policy {
	t.Helper()
	p, err := NewPolicy(DefaultPolicyConfig())
	require.NoError(t, err)
	return p
}

func TestNewPolicyRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PolicyConfig)
	}{
		{"unknown timezone", func(c *PolicyConfig) { c.Timezone = "Mars/Olympus" }},
		{"bad clock", func(c *PolicyConfig) { c.WorkStart = "8am" }},
		{"inverted hours", func(c *PolicyConfig) { c.WorkStart, c.WorkEnd = "17:00", "08:00" }},
		{"inverted lunch", func(c *PolicyConfig) { c.LunchStart, c.LunchEnd = "12:00", "11:45" }},
		{"lunch outside hours", func(c *PolicyConfig) { c.LunchStart, c.LunchEnd = "17:30", "18:00" }},
		{"zero step", func(c *PolicyConfig) { c.SlotStep = 0 }},
		{"unknown weekday", func(c *PolicyConfig) { c.WorkingDays = []string{"funday"} }},
		{"no working days", func(c *PolicyConfig) { c.WorkingDays = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPolicyConfig()
			tt.mutate(&cfg)
			_, err := NewPolicy(cfg)
			assert.Error(t, err)
		})
	}
}

func TestPolicyWorkingDays(t *testing.T) {
	p := defaultPolicy(t)

	for i := 0; i < 6; i++ {
		d := Date{Year: 2026, Month: time.October, Day: 19 + i}
		assert.True(t, p.IsWorkingDay(d), d.String())
	}
	sunday := Date{Year: 2026, Month: time.October, Day: 25}
	assert.False(t, p.IsWorkingDay(sunday))

	_, ok := p.Window(sunday)
	assert.False(t, ok)
}

func TestPolicyWindow(t *testing.T) {
	p := defaultPolicy(t)

	w, ok := p.Window(monday)
	require.True(t, ok)
	assert.Equal(t, "08:00", w.Work.Start.Format("15:04"))
	assert.Equal(t, "17:00", w.Work.End.Format("15:04"))
	assert.Equal(t, "11:45", w.Lunch.Start.Format("15:04"))
	assert.Equal(t, "12:00", w.Lunch.End.Format("15:04"))
	assert.Equal(t, p.Location(), w.Work.Start.Location())
	assert.True(t, w.HasLunch())
}

func TestPolicyWithoutLunch(t *testing.T) {
	cfg := DefaultPolicyConfig()
	cfg.LunchStart, cfg.LunchEnd = "12:00", "12:00"
	p, err := NewPolicy(cfg)
	require.NoError(t, err)

	w, ok := p.Window(monday)
	require.True(t, ok)
	assert.False(t, w.HasLunch())

	start := p.At(monday, 11*60+45)
	assert.NoError(t, p.CheckCandidate(start, 30*time.Minute, start.Add(-time.Hour)))
}

func TestParseInstant(t *testing.T) {
	p := defaultPolicy(t)

	naive, err := p.ParseInstant("2026-10-19T09:00:00")
	require.NoError(t, err)
	assert.Equal(t, p.At(monday, 9*60), naive)

	short, err := p.ParseInstant("2026-10-19T09:00")
	require.NoError(t, err)
	assert.True(t, short.Equal(naive))

	// 12:00 UTC is 09:00 in São Paulo.
	utc, err := p.ParseInstant("2026-10-19T12:00:00Z")
	require.NoError(t, err)
	assert.True(t, utc.Equal(naive))
	assert.Equal(t, p.Location(), utc.Location())

	offset, err := p.ParseInstant("2026-10-19T09:00:00-03:00")
	require.NoError(t, err)
	assert.True(t, offset.Equal(naive))

	for _, input := range []string{
		"2026-10-19T09:00-03:00",
		"2026-10-19T12:00Z",
		"2026-10-19T09:00:00-0300",
		"2026-10-19T09:00-0300",
		"2026-10-19T12:00:00.000Z",
	} {
		got, err := p.ParseInstant(input)
		require.NoError(t, err, input)
		assert.True(t, got.Equal(naive), input)
		assert.Equal(t, p.Location(), got.Location(), input)
	}

	for _, input := range []string{"tomorrow at nine", "2026-10-19T09:00+3", "2026-10-19"} {
		_, err = p.ParseInstant(input)
		assert.Error(t, err, input)
	}
}

func TestParseDateAndClock(t *testing.T) {
	d, err := ParseDate("2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, monday, d)
	assert.Equal(t, "2026-10-19", d.String())
	assert.Equal(t, time.Monday, d.Weekday())

	_, err = ParseDate("19/10/2026")
	assert.Error(t, err)

	c, err := ParseClock("11:45")
	require.NoError(t, err)
	assert.Equal(t, Clock(705), c)
	assert.Equal(t, "11:45", c.String())
}

func TestDateBefore(t *testing.T) {
	assert.True(t, Date{2026, time.October, 18}.Before(monday))
	assert.True(t, Date{2025, time.December, 31}.Before(monday))
	assert.False(t, monday.Before(monday))
	assert.False(t, Date{2026, time.November, 1}.Before(monday))
}

func TestCheckCandidate(t *testing.T) {
	p := defaultPolicy(t)
	earlier := p.At(monday, 6*60)

	tests := []struct {
		name     string
		start    time.Time
		duration time.Duration
		now      time.Time
		want     error
	}{
		{"ends exactly at work end", p.At(monday, 16*60), time.Hour, earlier, nil},
		{"ends after work end", p.At(monday, 16*60+1), time.Hour, earlier, ErrOutsideWorkingHours},
		{"starts before work start", p.At(monday, 7*60+45), 30 * time.Minute, earlier, ErrOutsideWorkingHours},
		{"touches lunch start", p.At(monday, 11*60+15), 30 * time.Minute, earlier, nil},
		{"starts at lunch start", p.At(monday, 11*60+45), 30 * time.Minute, earlier, ErrLunchBreak},
		{"crosses lunch", p.At(monday, 11*60+30), 45 * time.Minute, earlier, ErrLunchBreak},
		{"starts at lunch end", p.At(monday, 12*60), 30 * time.Minute, earlier, nil},
		{"fully before lunch", p.At(monday, 11*60), 45 * time.Minute, earlier, nil},
		{"non working day", p.At(Date{2026, time.October, 25}, 9*60), 30 * time.Minute, earlier, ErrNonWorkingDay},
		{"in the past", p.At(monday, 9*60), 30 * time.Minute, p.At(monday, 9*60+1), ErrPast},
		{"past wins over hours", p.At(monday, 7*60), 30 * time.Minute, p.At(monday, 10*60), ErrPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.CheckCandidate(tt.start, tt.duration, tt.now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
