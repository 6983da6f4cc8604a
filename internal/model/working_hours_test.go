package model

import "testing"

func TestNewWeekHours_Defaults(t *testing.T) {
	week := NewWeekHours(nil)

	for day := 0; day < DaysPerWeek; day++ {
		if !week[day].IsOpen {
			t.Errorf("day %d: default must be open", day)
		}
		if week[day].OpenTime != "09:00" || week[day].CloseTime != "17:00" {
			t.Errorf("day %d: default hours = %s-%s, want 09:00-17:00",
				day, week[day].OpenTime, week[day].CloseTime)
		}
	}
	if week[0].Name != "Monday" || week[6].Name != "Sunday" {
		t.Errorf("day names = %q..%q, want Monday..Sunday", week[0].Name, week[6].Name)
	}
}

func TestNewWeekHours_RowsOverrideDefaults(t *testing.T) {
	week := NewWeekHours([]*WorkingHours{
		{DayOfWeek: 5, OpenTime: "08:00", CloseTime: "20:00", IsOpen: true},
		{DayOfWeek: 6, OpenTime: "00:00", CloseTime: "00:00", IsOpen: false},
		{DayOfWeek: 9, OpenTime: "01:00", CloseTime: "02:00", IsOpen: true}, // out of range, ignored
	})

	if week[5].OpenTime != "08:00" || week[5].CloseTime != "20:00" {
		t.Errorf("saturday hours = %s-%s, want 08:00-20:00", week[5].OpenTime, week[5].CloseTime)
	}
	if week[6].IsOpen {
		t.Error("sunday must be closed")
	}
	if week[0].OpenTime != "09:00" {
		t.Errorf("monday kept default, got %s", week[0].OpenTime)
	}
}

func TestWeekHours_ForDate(t *testing.T) {
	week := NewWeekHours([]*WorkingHours{
		{DayOfWeek: 6, OpenTime: "10:00", CloseTime: "16:00", IsOpen: true},
	})

	// 2026-02-01 is a Sunday
	day, err := week.ForDate("2026-02-01")
	if err != nil {
		t.Fatalf("ForDate: %v", err)
	}
	if day.Name != "Sunday" || day.OpenTime != "10:00" {
		t.Fatalf("got %s %s-%s, want Sunday 10:00-16:00", day.Name, day.OpenTime, day.CloseTime)
	}

	// 2026-02-02 is a Monday
	day, err = week.ForDate("2026-02-02")
	if err != nil {
		t.Fatalf("ForDate: %v", err)
	}
	if day.Name != "Monday" {
		t.Fatalf("got %s, want Monday", day.Name)
	}

	if _, err := week.ForDate("02/01/2026"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestLessonStatusHelpers(t *testing.T) {
	l := &Lesson{Status: LessonStatusBooked}
	if !l.IsActive() || !l.IsBooked() {
		t.Error("booked lesson must be active and booked")
	}

	l.Status = LessonStatusCancelled
	if l.IsActive() {
		t.Error("cancelled lesson must not be active")
	}

	l.Status = LessonStatusCompleted
	if !l.IsActive() || l.IsBooked() {
		t.Error("completed lesson is active history but not booked")
	}
}
