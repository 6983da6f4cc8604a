package availability

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:30")
	if err != nil {
		t.Fatalf("ParseTimeOfDay(09:30): %v", err)
	}
	if got != 9*60+30 {
		t.Fatalf("ParseTimeOfDay(09:30) = %d, want %d", got, 9*60+30)
	}
	if got.String() != "09:30" {
		t.Fatalf("String() = %q, want %q", got.String(), "09:30")
	}

	for _, bad := range []string{"", "9:30:00", "24:00", "12:60", "noon"} {
		if _, err := ParseTimeOfDay(bad); err == nil {
			t.Errorf("ParseTimeOfDay(%q): expected error", bad)
		}
	}
}

func TestClock12(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"00:00", "12:00 AM"},
		{"09:05", "09:05 AM"},
		{"12:00", "12:00 PM"},
		{"15:30", "03:30 PM"},
	}
	for _, tc := range cases {
		tod, err := ParseTimeOfDay(tc.in)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q): %v", tc.in, err)
		}
		if got := tod.Clock12(); got != tc.want {
			t.Errorf("Clock12(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseInterval(t *testing.T) {
	iv, err := ParseInterval("08:00", "18:00")
	if err != nil {
		t.Fatalf("ParseInterval: %v", err)
	}
	if iv.String() != "08:00-18:00" {
		t.Fatalf("interval = %s, want 08:00-18:00", iv)
	}

	if _, err := ParseInterval("10:00", "10:00"); err == nil {
		t.Error("expected error for empty interval")
	}
	if _, err := ParseInterval("11:00", "10:00"); err == nil {
		t.Error("expected error for inverted interval")
	}
	if _, err := ParseInterval("bad", "10:00"); err == nil {
		t.Error("expected error for malformed start")
	}
}

// Touching intervals must merge (Touches) but must not conflict (Overlaps).
// The two predicates deliberately differ on the shared boundary.
func TestTouchingBoundaryPredicatesDiffer(t *testing.T) {
	a := mustInterval(t, "09:00", "10:00")
	b := mustInterval(t, "10:00", "11:00")

	if a.Overlaps(b) || b.Overlaps(a) {
		t.Error("back-to-back intervals must not overlap")
	}
	if !a.Touches(b) || !b.Touches(a) {
		t.Error("back-to-back intervals must touch")
	}
}

func TestOverlaps(t *testing.T) {
	base := mustInterval(t, "10:00", "12:00")
	cases := []struct {
		start, end string
		want       bool
	}{
		{"09:00", "10:00", false}, // touches left
		{"12:00", "13:00", false}, // touches right
		{"09:00", "10:30", true},
		{"11:00", "13:00", true},
		{"10:30", "11:30", true}, // inside
		{"09:00", "13:00", true}, // covers
		{"08:00", "09:00", false},
	}
	for _, tc := range cases {
		iv := mustInterval(t, tc.start, tc.end)
		if got := base.Overlaps(iv); got != tc.want {
			t.Errorf("(%s).Overlaps(%s) = %v, want %v", base, iv, got, tc.want)
		}
	}
}

func TestContains(t *testing.T) {
	base := mustInterval(t, "10:00", "12:00")

	if !base.Contains(mustInterval(t, "10:00", "11:00")) {
		t.Error("interval must contain its own prefix")
	}
	if !base.Contains(base) {
		t.Error("interval must contain itself")
	}
	if base.Contains(mustInterval(t, "11:30", "12:30")) {
		t.Error("interval must not contain a range past its end")
	}
}

func TestContainedInAny(t *testing.T) {
	set := []Interval{
		mustInterval(t, "08:00", "09:00"),
		mustInterval(t, "10:00", "12:00"),
	}

	if !ContainedInAny(mustInterval(t, "10:00", "11:00"), set) {
		t.Error("10:00-11:00 fits the start of 10:00-12:00")
	}
	if ContainedInAny(mustInterval(t, "11:00", "12:30"), set) {
		t.Error("11:00-12:30 sticks out of every interval")
	}
	if ContainedInAny(mustInterval(t, "09:00", "10:00"), set) {
		t.Error("the gap between intervals is not contained")
	}
}

func mustInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	iv, err := ParseInterval(start, end)
	if err != nil {
		t.Fatalf("ParseInterval(%s, %s): %v", start, end, err)
	}
	return iv
}
