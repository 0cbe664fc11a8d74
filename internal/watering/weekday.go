package watering

import (
	"strings"
	"time"
)

// Weekday tags as persisted in schedule entries. The vocabulary is fixed:
// Seg, Ter, Qua, Qui, Sex, Sab, Dom.
const (
	TagMonday    = "Seg"
	TagTuesday   = "Ter"
	TagWednesday = "Qua"
	TagThursday  = "Qui"
	TagFriday    = "Sex"
	TagSaturday  = "Sab"
	TagSunday    = "Dom"
)

var tagByWeekday = map[time.Weekday]string{
	time.Monday:    TagMonday,
	time.Tuesday:   TagTuesday,
	time.Wednesday: TagWednesday,
	time.Thursday:  TagThursday,
	time.Friday:    TagFriday,
	time.Saturday:  TagSaturday,
	time.Sunday:    TagSunday,
}

var weekdayByTag = map[string]time.Weekday{
	TagMonday:    time.Monday,
	TagTuesday:   time.Tuesday,
	TagWednesday: time.Wednesday,
	TagThursday:  time.Thursday,
	TagFriday:    time.Friday,
	TagSaturday:  time.Saturday,
	TagSunday:    time.Sunday,
}

// TagForWeekday returns the stored tag for a time.Weekday. Total: every
// weekday has a tag.
func TagForWeekday(d time.Weekday) string {
	return tagByWeekday[d]
}

// WeekdayForTag returns the time.Weekday for a stored tag, or false when the
// tag is not part of the vocabulary.
func WeekdayForTag(tag string) (time.Weekday, bool) {
	d, ok := weekdayByTag[tag]
	return d, ok
}

// SetContains reports whether the comma-joined weekday set includes tag.
// Unknown tokens and duplicates in the stored value are ignored.
func SetContains(set, tag string) bool {
	for _, tok := range strings.Split(set, ",") {
		if strings.TrimSpace(tok) == tag {
			return true
		}
	}
	return false
}

// ValidateSet checks that every token of a comma-joined weekday set belongs
// to the vocabulary and that the set is not empty.
func ValidateSet(set string) error {
	toks := strings.Split(set, ",")
	if len(toks) == 0 || strings.TrimSpace(set) == "" {
		return errEmptyWeekdaySet
	}
	for _, tok := range toks {
		if _, ok := weekdayByTag[strings.TrimSpace(tok)]; !ok {
			return errUnknownWeekdayTag(strings.TrimSpace(tok))
		}
	}
	return nil
}
