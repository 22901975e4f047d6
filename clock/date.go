package clock

import "time"

// =============================================================================
// DATE - A calendar day with no time component
// =============================================================================

// Date identifies a calendar day. The embedded time is always normalized to
// midnight UTC, so two Dates for the same day compare equal.
type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates any time.Time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.Time.Before(other.Time) }
func (d Date) Equal(other Date) bool         { return d.Time.Equal(other.Time) }
func (d Date) After(other Date) bool         { return d.Time.After(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// ISOWeekday returns the day-of-week with Monday=1 .. Sunday=7.
func (d Date) ISOWeekday() int {
	wd := int(d.Time.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func (d Date) IsZero() bool   { return d.Time.IsZero() }
func (d Date) String() string { return d.Time.Format("2006-01-02") }

// =============================================================================
// WEEK - A Monday-to-Sunday window around a date
// =============================================================================

// Week is a seven-day window, Start on Monday and End on the following Sunday.
type Week struct {
	Start Date
	End   Date
}

// WeekOf returns the ISO week window containing the given date:
// Start = date - (isoWeekday-1) days, End = Start + 6 days.
func WeekOf(d Date) Week {
	start := d.AddDays(-(d.ISOWeekday() - 1))
	return Week{Start: start, End: start.AddDays(6)}
}

// Contains reports whether the date falls inside the window [Start, End].
func (w Week) Contains(d Date) bool {
	return d.AfterOrEqual(w.Start) && d.BeforeOrEqual(w.End)
}

// Days returns the seven dates of the week in order.
func (w Week) Days() []Date {
	days := make([]Date, 0, 7)
	for cur := w.Start; cur.BeforeOrEqual(w.End); cur = cur.AddDays(1) {
		days = append(days, cur)
	}
	return days
}

func (w Week) String() string {
	return "[" + w.Start.String() + ", " + w.End.String() + "]"
}
