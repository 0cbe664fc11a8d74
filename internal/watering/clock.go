package watering

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errEmptyWeekdaySet = errors.New("weekday set is empty")
	// ErrBadClock is returned by ParseClock for anything that is not a
	// valid "H:MM" / "HH:MM" time of day.
	ErrBadClock = errors.New("invalid time of day, expected HH:MM")
)

func errUnknownWeekdayTag(tag string) error {
	return fmt.Errorf("unknown weekday tag %q", tag)
}

// ParseClock parses a time-of-day string of the form "H:MM" or "HH:MM"
// with hour in [0,23] and minute in [0,59]. Used at the entry-creation
// boundary; the evaluator itself treats unparseable stored values as a
// non-match.
func ParseClock(s string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(h) < 1 || len(h) > 2 || len(m) != 2 {
		return 0, 0, ErrBadClock
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, ErrBadClock
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrBadClock
	}
	return hour, minute, nil
}
