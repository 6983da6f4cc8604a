package service

import (
	"testing"

	"github.com/Freeeeeet/skischool/internal/availability"
	"github.com/Freeeeeet/skischool/internal/model"
)

func TestRequestsToEngine(t *testing.T) {
	requests := []*model.TimeRequest{
		{ID: 1, StartTime: "09:00", EndTime: "12:00", RequestType: model.RequestTypeOpen},
		{ID: 2, StartTime: "10:00", EndTime: "11:00", RequestType: model.RequestTypeClose},
	}

	engine, err := requestsToEngine(requests)
	if err != nil {
		t.Fatalf("requestsToEngine: %v", err)
	}
	if len(engine) != 2 {
		t.Fatalf("got %d requests, want 2", len(engine))
	}
	if engine[0].Kind != availability.RequestOpen {
		t.Errorf("first request kind = %v, want open", engine[0].Kind)
	}
	if engine[1].Kind != availability.RequestClose {
		t.Errorf("second request kind = %v, want close", engine[1].Kind)
	}

	// Порядок заявок должен сохраниться: движок применяет их
	// в порядке обработки.
	merged := availability.MergeRequests(engine)
	if len(merged) != 2 {
		t.Fatalf("merged into %d intervals, want 2", len(merged))
	}
}

func TestRequestsToEngine_BadTime(t *testing.T) {
	requests := []*model.TimeRequest{
		{ID: 7, StartTime: "25:00", EndTime: "26:00", RequestType: model.RequestTypeOpen},
	}

	_, err := requestsToEngine(requests)
	if err == nil {
		t.Fatal("expected error for malformed time, got nil")
	}
}

func TestLessonsToIntervals(t *testing.T) {
	lessons := []*model.Lesson{
		{ID: 1, StartTime: "10:00", EndTime: "11:00"},
		{ID: 2, StartTime: "14:30", EndTime: "15:30"},
	}

	intervals, err := lessonsToIntervals(lessons)
	if err != nil {
		t.Fatalf("lessonsToIntervals: %v", err)
	}
	if len(intervals) != 2 {
		t.Fatalf("got %d intervals, want 2", len(intervals))
	}
	if intervals[0].String() != "10:00-11:00" {
		t.Errorf("first interval = %s, want 10:00-11:00", intervals[0])
	}

	_, err = lessonsToIntervals([]*model.Lesson{{ID: 3, StartTime: "11:00", EndTime: "10:00"}})
	if err == nil {
		t.Fatal("expected error for inverted interval, got nil")
	}
}
