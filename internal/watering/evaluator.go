// Package watering decides whether irrigation should currently be running.
//
// The evaluator is a pure function of (now, entries): no state, no mutation,
// safe to call from any number of concurrent request handlers. An entry
// triggers when the weekday of now appears in its weekday set and now falls
// inside the half-open interval [start, start+duration).
package watering

import (
	"time"

	"github.com/gotejo/backend/internal/models"
)

// Decision is the evaluator's verdict. DurationMinutes is the configured
// duration of the triggering entry; when several entries trigger at once it
// is the maximum configured duration among them, which keeps the result
// independent of row order.
type Decision struct {
	Watering        bool
	DurationMinutes int
}

// Evaluate reports whether any of the given entries is currently triggering
// at instant now, evaluated on the wall clock of loc.
//
// Inactive entries never trigger. Entries with a malformed stored time or an
// unknown weekday tag are treated as a non-match rather than an error, so
// evaluation is total over whatever state the store holds.
func Evaluate(now time.Time, loc *time.Location, entries []*models.ScheduleEntry) Decision {
	local := now.In(loc)
	today := TagForWeekday(local.Weekday())

	var dec Decision
	for _, e := range entries {
		if e == nil || !e.Active {
			continue
		}
		if !SetContains(e.Weekdays, today) {
			continue
		}
		if e.DurationMinutes <= 0 {
			continue
		}
		hour, minute, err := ParseClock(e.TimeOfDay)
		if err != nil {
			continue
		}
		start := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
		end := start.Add(time.Duration(e.DurationMinutes) * time.Minute)
		if local.Before(start) || !local.Before(end) {
			continue
		}
		dec.Watering = true
		if e.DurationMinutes > dec.DurationMinutes {
			dec.DurationMinutes = e.DurationMinutes
		}
	}
	return dec
}
