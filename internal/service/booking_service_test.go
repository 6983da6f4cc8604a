package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/skischool/internal/availability"
)

func TestValidateFutureDate(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	if err := validateFutureDate(today); err != nil {
		t.Errorf("today should be allowed: %v", err)
	}
	if err := validateFutureDate(tomorrow); err != nil {
		t.Errorf("tomorrow should be allowed: %v", err)
	}
	if err := validateFutureDate(yesterday); !errors.Is(err, ErrDateInPast) {
		t.Errorf("yesterday: got %v, want ErrDateInPast", err)
	}
	if err := validateFutureDate("2026-13-40"); err == nil {
		t.Error("malformed date accepted")
	}
	if err := validateFutureDate("02.01.2026"); err == nil {
		t.Error("wrong date format accepted")
	}
}

func mustRanges(t *testing.T, pairs ...string) []availability.Interval {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("pairs must come in twos")
	}
	var set []availability.Interval
	for i := 0; i < len(pairs); i += 2 {
		iv, err := availability.ParseInterval(pairs[i], pairs[i+1])
		if err != nil {
			t.Fatalf("ParseInterval(%s, %s): %v", pairs[i], pairs[i+1], err)
		}
		set = append(set, iv)
	}
	return set
}

func TestAdminLessonInterval(t *testing.T) {
	want, err := adminLessonInterval("10:00")
	if err != nil {
		t.Fatalf("adminLessonInterval: %v", err)
	}
	if want.String() != "10:00-11:00" {
		t.Errorf("interval = %s, want 10:00-11:00", want)
	}

	// Конец за пределами суток непредставим в "HH:MM".
	for _, start := range []string{"23:30", "23:00"} {
		if _, err := adminLessonInterval(start); !errors.Is(err, ErrCrossesMidnight) {
			t.Errorf("start %s: got %v, want ErrCrossesMidnight", start, err)
		}
	}

	if _, err := adminLessonInterval("25:00"); err == nil {
		t.Error("malformed start time accepted")
	}
}

func TestCheckManualLesson(t *testing.T) {
	want := mustRanges(t, "10:00", "11:00")[0]

	// Время вообще не открыто заявками.
	if err := checkManualLesson(want, nil, nil); !errors.Is(err, ErrTimeUnavailable) {
		t.Errorf("never-opened time: got %v, want ErrTimeUnavailable", err)
	}

	// Открыто, но частично: занятие выходит за границу.
	open := mustRanges(t, "10:30", "12:00")
	if err := checkManualLesson(want, nil, open); !errors.Is(err, ErrTimeUnavailable) {
		t.Errorf("partially open time: got %v, want ErrTimeUnavailable", err)
	}

	// Открыто целиком и свободно.
	open = mustRanges(t, "09:00", "13:00")
	if err := checkManualLesson(want, nil, open); err != nil {
		t.Errorf("open and free time rejected: %v", err)
	}

	// Пересечение с существующим занятием побеждает проверку доступности.
	booked := mustRanges(t, "10:30", "11:30")
	bookable := availability.SubtractBookings(open, booked)
	if err := checkManualLesson(want, booked, bookable); !errors.Is(err, ErrTimeConflict) {
		t.Errorf("overlapping lesson: got %v, want ErrTimeConflict", err)
	}

	// Занятие впритык не конфликтует и остаётся в доступном времени.
	booked = mustRanges(t, "11:00", "12:00")
	bookable = availability.SubtractBookings(open, booked)
	if err := checkManualLesson(want, booked, bookable); err != nil {
		t.Errorf("back-to-back lesson rejected: %v", err)
	}
}

func TestInstructorDayLockKey(t *testing.T) {
	if instructorDayLockKey(5, "2026-03-01") != instructorDayLockKey(5, "2026-03-01") {
		t.Error("key is not deterministic")
	}
	if instructorDayLockKey(5, "2026-03-01") == instructorDayLockKey(6, "2026-03-01") {
		t.Error("different instructors share a key")
	}
	if instructorDayLockKey(5, "2026-03-01") == instructorDayLockKey(5, "2026-03-02") {
		t.Error("different dates share a key")
	}

	// ID больше 32 бит не должен схлопываться со своим младшим словом.
	big := int64(1) << 40
	if instructorDayLockKey(big, "2026-03-01") == instructorDayLockKey(0, "2026-03-01") {
		t.Error("key truncates 64-bit instructor ids")
	}
}
