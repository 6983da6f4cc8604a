package availability

import (
	"reflect"
	"testing"
)

func TestDiscretize_ExactHour(t *testing.T) {
	slots := Discretize(intervals(t, "09:00", "10:00"), DefaultSlotMinutes, DefaultStepMinutes)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d: %v", len(slots), slots)
	}
	want := Slot{StartTime: "09:00", EndTime: "10:00", Display: "09:00 AM - 10:00 AM"}
	if slots[0] != want {
		t.Fatalf("slot = %+v, want %+v", slots[0], want)
	}
}

func TestDiscretize_NinetyMinutes(t *testing.T) {
	slots := Discretize(intervals(t, "09:00", "10:30"), DefaultSlotMinutes, DefaultStepMinutes)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d: %v", len(slots), slots)
	}
	if slots[0].StartTime != "09:00" || slots[0].EndTime != "10:00" {
		t.Errorf("first slot = %s-%s, want 09:00-10:00", slots[0].StartTime, slots[0].EndTime)
	}
	if slots[1].StartTime != "09:30" || slots[1].EndTime != "10:30" {
		t.Errorf("second slot = %s-%s, want 09:30-10:30", slots[1].StartTime, slots[1].EndTime)
	}
}

func TestDiscretize_TooShortInterval(t *testing.T) {
	slots := Discretize(intervals(t, "09:00", "09:45"), DefaultSlotMinutes, DefaultStepMinutes)
	if len(slots) != 0 {
		t.Fatalf("expected no slots from a 45-minute interval, got %v", slots)
	}
}

func TestDiscretize_OverlappingWindow(t *testing.T) {
	// a two-hour interval yields a sliding window, not a partition
	slots := Discretize(intervals(t, "10:00", "12:00"), DefaultSlotMinutes, DefaultStepMinutes)
	var got []string
	for _, s := range slots {
		got = append(got, s.StartTime)
	}
	want := []string{"10:00", "10:30", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slot starts = %v, want %v", got, want)
	}
}

func TestDiscretize_AfternoonDisplay(t *testing.T) {
	slots := Discretize(intervals(t, "13:00", "14:00"), DefaultSlotMinutes, DefaultStepMinutes)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].Display != "01:00 PM - 02:00 PM" {
		t.Fatalf("display = %q, want %q", slots[0].Display, "01:00 PM - 02:00 PM")
	}
}

func TestDiscretize_BadParameters(t *testing.T) {
	iv := intervals(t, "09:00", "12:00")
	if got := Discretize(iv, 0, 30); got != nil {
		t.Errorf("zero duration: got %v, want nil", got)
	}
	if got := Discretize(iv, 60, 0); got != nil {
		t.Errorf("zero step: got %v, want nil", got)
	}
}

func TestDedupeSlots(t *testing.T) {
	// two instructors both open 10:00-12:00; one also opens 09:00-10:00
	first := Discretize(intervals(t, "10:00", "12:00"), DefaultSlotMinutes, DefaultStepMinutes)
	second := Discretize(intervals(t, "09:00", "10:00", "10:00", "12:00"), DefaultSlotMinutes, DefaultStepMinutes)

	merged := DedupeSlots(append(first, second...))

	var starts []string
	for _, s := range merged {
		starts = append(starts, s.StartTime)
	}
	want := []string{"09:00", "10:00", "10:30", "11:00"}
	if !reflect.DeepEqual(starts, want) {
		t.Fatalf("deduped starts = %v, want %v", starts, want)
	}
}

func TestDedupeSlots_Empty(t *testing.T) {
	if got := DedupeSlots(nil); len(got) != 0 {
		t.Fatalf("DedupeSlots(nil) = %v, want empty", got)
	}
}
