package app

import (
	"time"

	"petcare/internal/domain"
)

// Calendar supplies "now" and "today" to services. It is the only source of
// current time in this package.
type Calendar struct {
	now func() time.Time
	loc *time.Location
}

// NewCalendar builds a Calendar from a clock and the zone in which calendar
// dates are judged. A nil clock means time.Now; a nil zone means time.Local.
func NewCalendar(now func() time.Time, loc *time.Location) Calendar {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return Calendar{now: now, loc: loc}
}

// Now returns the current instant.
func (c Calendar) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// Today returns the current calendar date in the configured zone.
func (c Calendar) Today() domain.Date {
	loc := c.loc
	if loc == nil {
		loc = time.Local
	}
	return domain.DateOf(c.Now().In(loc))
}
