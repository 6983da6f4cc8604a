package availability

import (
	"reflect"
	"testing"
)

func open(t *testing.T, start, end string) Request {
	t.Helper()
	return Request{Interval: mustInterval(t, start, end), Kind: RequestOpen}
}

func closeReq(t *testing.T, start, end string) Request {
	t.Helper()
	return Request{Interval: mustInterval(t, start, end), Kind: RequestClose}
}

func intervals(t *testing.T, pairs ...string) []Interval {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("intervals: odd number of bounds")
	}
	var out []Interval
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, mustInterval(t, pairs[i], pairs[i+1]))
	}
	return out
}

func TestMergeRequests_Empty(t *testing.T) {
	if got := MergeRequests(nil); len(got) != 0 {
		t.Fatalf("MergeRequests(nil) = %v, want empty", got)
	}
}

func TestMergeRequests_DisjointOpens(t *testing.T) {
	got := MergeRequests([]Request{
		open(t, "14:00", "16:00"),
		open(t, "08:00", "10:00"),
	})
	want := intervals(t, "08:00", "10:00", "14:00", "16:00")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merged = %v, want %v (sorted by start)", got, want)
	}
}

func TestMergeRequests_AdjacentOpensCoalesce(t *testing.T) {
	got := MergeRequests([]Request{
		open(t, "09:00", "10:00"),
		open(t, "10:00", "11:00"),
	})
	want := intervals(t, "09:00", "11:00")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merged = %v, want %v (touching opens coalesce)", got, want)
	}
}

func TestMergeRequests_OverlappingOpensAbsorb(t *testing.T) {
	got := MergeRequests([]Request{
		open(t, "09:00", "12:00"),
		open(t, "11:00", "13:00"),
		open(t, "08:00", "09:30"),
	})
	want := intervals(t, "08:00", "13:00")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merged = %v, want %v", got, want)
	}
}

func TestMergeRequests_CloseSplitsInterval(t *testing.T) {
	got := MergeRequests([]Request{
		open(t, "08:00", "18:00"),
		closeReq(t, "12:00", "13:00"),
	})
	want := intervals(t, "08:00", "12:00", "13:00", "18:00")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merged = %v, want %v", got, want)
	}

	// both pieces plus the closed gap reassemble the original interval
	if got[0].Minutes()+got[1].Minutes()+60 != 10*60 {
		t.Fatal("split pieces plus the gap must equal the original interval")
	}
}

func TestMergeRequests_CloseIsIdempotent(t *testing.T) {
	once := MergeRequests([]Request{
		open(t, "08:00", "18:00"),
		closeReq(t, "12:00", "13:00"),
	})
	twice := MergeRequests([]Request{
		open(t, "08:00", "18:00"),
		closeReq(t, "12:00", "13:00"),
		closeReq(t, "12:00", "13:00"),
	})
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second close changed the result: %v vs %v", once, twice)
	}
}

func TestMergeRequests_CloseEdges(t *testing.T) {
	cases := []struct {
		name  string
		close Request
		want  []Interval
	}{
		{"covers whole", closeReq(t, "08:00", "19:00"), nil},
		{"covers exactly", closeReq(t, "09:00", "17:00"), nil},
		{"cuts head", closeReq(t, "08:00", "11:00"), intervals(t, "11:00", "17:00")},
		{"cuts tail", closeReq(t, "15:00", "18:00"), intervals(t, "09:00", "15:00")},
		{"no overlap", closeReq(t, "18:00", "19:00"), intervals(t, "09:00", "17:00")},
		{"never opened", closeReq(t, "07:00", "08:00"), intervals(t, "09:00", "17:00")},
	}

	for _, tc := range cases {
		got := MergeRequests([]Request{open(t, "09:00", "17:00"), tc.close})
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

// A later open re-opens time removed by an earlier close. The fold order is
// the approval order, which is why callers sort by processed_at.
func TestMergeRequests_LaterOpenReopensClosedTime(t *testing.T) {
	got := MergeRequests([]Request{
		open(t, "08:00", "18:00"),
		closeReq(t, "12:00", "14:00"),
		open(t, "12:00", "13:00"),
	})
	want := intervals(t, "08:00", "13:00", "14:00", "18:00")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merged = %v, want %v", got, want)
	}

	// same requests, opposite approval order, different result
	reordered := MergeRequests([]Request{
		open(t, "08:00", "18:00"),
		open(t, "12:00", "13:00"),
		closeReq(t, "12:00", "14:00"),
	})
	want = intervals(t, "08:00", "12:00", "14:00", "18:00")
	if !reflect.DeepEqual(reordered, want) {
		t.Fatalf("reordered = %v, want %v", reordered, want)
	}
}

func TestSubtractBookings_Commutative(t *testing.T) {
	base := intervals(t, "08:00", "18:00")
	a := mustInterval(t, "09:00", "10:00")
	b := mustInterval(t, "14:00", "15:30")

	ab := SubtractBookings(base, []Interval{a, b})
	ba := SubtractBookings(base, []Interval{b, a})
	if !reflect.DeepEqual(ab, ba) {
		t.Fatalf("subtraction order changed the result: %v vs %v", ab, ba)
	}

	want := intervals(t, "08:00", "09:00", "10:00", "14:00", "15:30", "18:00")
	if !reflect.DeepEqual(ab, want) {
		t.Fatalf("subtracted = %v, want %v", ab, want)
	}
}

func TestSubtractBookings_NoBookings(t *testing.T) {
	base := intervals(t, "08:00", "12:00")
	got := SubtractBookings(base, nil)
	if !reflect.DeepEqual(got, base) {
		t.Fatalf("subtracting nothing changed the set: %v", got)
	}
}

// Full pipeline: open 08-18, close 12-13, one lesson 09-10.
func TestPipeline_EndToEnd(t *testing.T) {
	openRanges := MergeRequests([]Request{
		open(t, "08:00", "18:00"),
		closeReq(t, "12:00", "13:00"),
	})
	bookable := SubtractBookings(openRanges, intervals(t, "09:00", "10:00"))

	want := intervals(t, "08:00", "09:00", "10:00", "12:00", "13:00", "18:00")
	if !reflect.DeepEqual(bookable, want) {
		t.Fatalf("bookable = %v, want %v", bookable, want)
	}

	// 11:30-12:30 sticks into the closed hour and fits no interval
	if ContainedInAny(mustInterval(t, "11:30", "12:30"), bookable) {
		t.Error("11:30-12:30 must be rejected")
	}
	// 10:00-11:00 exactly fits the start of 10:00-12:00
	if !ContainedInAny(mustInterval(t, "10:00", "11:00"), bookable) {
		t.Error("10:00-11:00 must be accepted")
	}
	// 11:00-12:00 ends exactly where the closed hour starts; half-open
	// intervals do not collide at the shared boundary
	if !ContainedInAny(mustInterval(t, "11:00", "12:00"), bookable) {
		t.Error("11:00-12:00 must be accepted")
	}
}
