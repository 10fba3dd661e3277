// internal/daily/daily.go
//
// Availability clock for the daily puzzle.
// Responsibilities:
//   - Report the current calendar date in one fixed civil timezone.
//   - Report the next local midnight (rollover) as an absolute instant.
//   - Decide whether a dated puzzle is released.
//
// Notes:
//   - The date is recomputed from the current instant on every call; the
//     process runs across many days.
//   - Midnight is built with civil.Date.In so daylight-saving days of 23 or
//     25 hours roll over at the correct instant.

package daily

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone database for minimal container images

	"cloud.google.com/go/civil"
)

// DefaultTimezone is used when no zone is configured.
const DefaultTimezone = "America/New_York"

// Clock computes puzzle days in a fixed location.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock loads the named zone. now may be nil for the wall clock.
func NewClock(zone string, now func() time.Time) (*Clock, error) {
	if zone == "" {
		zone = DefaultTimezone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	if now == nil {
		now = time.Now
	}
	return &Clock{loc: loc, now: now}, nil
}

// Location returns the clock's zone.
func (c *Clock) Location() *time.Location { return c.loc }

// DateAt returns the calendar date in the clock's zone at instant t.
func (c *Clock) DateAt(t time.Time) civil.Date {
	return civil.DateOf(t.In(c.loc))
}

// CurrentDate returns today's date in the clock's zone.
func (c *Clock) CurrentDate() civil.Date {
	return c.DateAt(c.now())
}

// NextRollover returns the next local midnight as an absolute instant.
func (c *Clock) NextRollover() time.Time {
	return c.ReleaseTime(c.CurrentDate().AddDays(1))
}

// ReleaseTime returns the instant a puzzle dated d becomes available: local
// midnight at the start of d.
func (c *Clock) ReleaseTime(d civil.Date) time.Time {
	return d.In(c.loc)
}

// Available reports whether a puzzle dated d is released at this instant.
func (c *Clock) Available(d civil.Date) bool {
	return !d.After(c.CurrentDate())
}
