package watering

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gotejo/backend/internal/models"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func makeEntry(clock string, duration int, days string, active bool) *models.ScheduleEntry {
	return &models.ScheduleEntry{
		ID:              uuid.New(),
		AccountID:       uuid.New(),
		TimeOfDay:       clock,
		DurationMinutes: duration,
		Weekdays:        days,
		Active:          active,
	}
}

// monday returns a UTC instant on Monday 2026-01-05 at the given clock.
func monday(hour, minute int) time.Time {
	return time.Date(2026, time.January, 5, hour, minute, 0, 0, time.UTC)
}

// ---------------------------------------------------------------------------
// interval semantics
// ---------------------------------------------------------------------------

func TestEvaluate_IntervalPolicy(t *testing.T) {
	entry := makeEntry("08:00", 30, "Seg", true)
	entries := []*models.ScheduleEntry{entry}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"inside interval", monday(8, 15), true},
		{"exactly at start", monday(8, 0), true},
		{"exactly at end is closed", monday(8, 30), false},
		{"one minute before start", monday(7, 59), false},
		{"day mismatch", monday(8, 15).AddDate(0, 0, 1), false}, // Tuesday
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dec := Evaluate(tc.now, time.UTC, entries)
			if dec.Watering != tc.want {
				t.Errorf("Evaluate(%s) watering = %v, want %v", tc.now, dec.Watering, tc.want)
			}
			if tc.want && dec.DurationMinutes != 30 {
				t.Errorf("expected duration 30, got %d", dec.DurationMinutes)
			}
		})
	}
}

func TestEvaluate_InactiveEntriesNeverTrigger(t *testing.T) {
	entries := []*models.ScheduleEntry{
		makeEntry("08:00", 30, "Seg,Ter,Qua,Qui,Sex,Sab,Dom", false),
	}
	for hour := 0; hour < 24; hour++ {
		dec := Evaluate(monday(hour, 10), time.UTC, entries)
		if dec.Watering {
			t.Fatalf("inactive entry reported as triggering at hour %d", hour)
		}
	}
}

func TestEvaluate_IsPure(t *testing.T) {
	entries := []*models.ScheduleEntry{
		makeEntry("08:00", 30, "Seg", true),
		makeEntry("09:00", 10, "Ter", true),
	}
	now := monday(8, 20)
	first := Evaluate(now, time.UTC, entries)
	for i := 0; i < 100; i++ {
		if got := Evaluate(now, time.UTC, entries); got != first {
			t.Fatalf("call %d: got %+v, want %+v", i, got, first)
		}
	}
	// Inputs must not be mutated.
	if entries[0].TimeOfDay != "08:00" || !entries[0].Active {
		t.Fatal("Evaluate mutated its input")
	}
}

func TestEvaluate_OverlapReportsMaxDuration(t *testing.T) {
	// Both entries cover Monday 08:15; the verdict must be deterministic
	// regardless of slice order.
	a := makeEntry("08:00", 30, "Seg", true)
	b := makeEntry("08:10", 45, "Seg", true)
	now := monday(8, 15)

	for _, entries := range [][]*models.ScheduleEntry{{a, b}, {b, a}} {
		dec := Evaluate(now, time.UTC, entries)
		if !dec.Watering {
			t.Fatal("expected overlapping entries to trigger")
		}
		if dec.DurationMinutes != 45 {
			t.Errorf("expected max duration 45, got %d", dec.DurationMinutes)
		}
	}
}

func TestEvaluate_MalformedStateIsNonMatch(t *testing.T) {
	entries := []*models.ScheduleEntry{
		makeEntry("25:00", 30, "Seg", true),  // bad hour
		makeEntry("08:00", 30, "Lun", true),  // tag outside the vocabulary
		makeEntry("nope", 30, "Seg", true),   // unparseable clock
		makeEntry("08:00", 0, "Seg", true),   // nonpositive duration
		makeEntry("08:00", -5, "Seg", true),
	}
	dec := Evaluate(monday(8, 15), time.UTC, entries)
	if dec.Watering {
		t.Errorf("malformed entries must never trigger, got %+v", dec)
	}
}

func TestEvaluate_DuplicateAndUnorderedTags(t *testing.T) {
	// The stored weekday list is a set: duplicates and ordering are noise.
	entries := []*models.ScheduleEntry{
		makeEntry("08:00", 30, "Sex,Seg,Seg, Seg", true),
	}
	if dec := Evaluate(monday(8, 15), time.UTC, entries); !dec.Watering {
		t.Error("expected duplicate/unordered tags to still match Monday")
	}
}

func TestEvaluate_RespectsLocation(t *testing.T) {
	saoPaulo := time.FixedZone("America/Sao_Paulo", -3*60*60)
	// 11:15 UTC is 08:15 in Sao Paulo.
	entries := []*models.ScheduleEntry{makeEntry("08:00", 30, "Seg", true)}

	if dec := Evaluate(monday(11, 15), saoPaulo, entries); !dec.Watering {
		t.Error("expected entry to trigger on the local wall clock")
	}
	if dec := Evaluate(monday(11, 15), time.UTC, entries); dec.Watering {
		t.Error("entry must not trigger at 11:15 when evaluated in UTC")
	}
}

// ---------------------------------------------------------------------------
// weekday table
// ---------------------------------------------------------------------------

func TestWeekdayMappingIsBijective(t *testing.T) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		tag := TagForWeekday(d)
		if tag == "" {
			t.Fatalf("no tag for weekday %v", d)
		}
		back, ok := WeekdayForTag(tag)
		if !ok || back != d {
			t.Errorf("round trip %v -> %q -> %v, ok=%v", d, tag, back, ok)
		}
	}
	for _, tag := range []string{"Seg", "Ter", "Qua", "Qui", "Sex", "Sab", "Dom"} {
		d, ok := WeekdayForTag(tag)
		if !ok {
			t.Fatalf("tag %q not mapped", tag)
		}
		if TagForWeekday(d) != tag {
			t.Errorf("round trip %q -> %v -> %q", tag, d, TagForWeekday(d))
		}
	}
}

func TestValidateSet(t *testing.T) {
	if err := ValidateSet("Seg,Qua,Sex"); err != nil {
		t.Errorf("valid set rejected: %v", err)
	}
	if err := ValidateSet(""); err == nil {
		t.Error("empty set accepted")
	}
	if err := ValidateSet("Seg,Mon"); err == nil {
		t.Error("unknown tag accepted")
	}
}

// ---------------------------------------------------------------------------
// clock parsing
// ---------------------------------------------------------------------------

func TestParseClock(t *testing.T) {
	accept := []struct {
		in   string
		h, m int
	}{
		{"0:00", 0, 0},
		{"8:05", 8, 5},
		{"08:00", 8, 0},
		{"23:59", 23, 59},
	}
	for _, tc := range accept {
		h, m, err := ParseClock(tc.in)
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", tc.in, err)
			continue
		}
		if h != tc.h || m != tc.m {
			t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tc.in, h, m, tc.h, tc.m)
		}
	}

	reject := []string{"24:00", "12:60", "abc", "", "12", "12:5", "12:345", "-1:00", "08:0x"}
	for _, in := range reject {
		if _, _, err := ParseClock(in); err == nil {
			t.Errorf("ParseClock(%q): expected error", in)
		}
	}
}
