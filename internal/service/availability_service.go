package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/skischool/internal/availability"
	"github.com/Freeeeeet/skischool/internal/model"
	"github.com/Freeeeeet/skischool/internal/repository"
	"github.com/Freeeeeet/skischool/internal/repository/base"
	"go.uber.org/zap"
)

// AvailabilityService считает доступность инструкторов: складывает
// approved-заявки в открытые интервалы, вычитает занятые уроки и
// нарезает результат на слоты для записи.
type AvailabilityService struct {
	requestRepo *repository.TimeRequestRepository
	lessonRepo  *repository.LessonRepository
	userRepo    *repository.UserRepository
	logger      *zap.Logger
}

func NewAvailabilityService(
	requestRepo *repository.TimeRequestRepository,
	lessonRepo *repository.LessonRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		requestRepo: requestRepo,
		lessonRepo:  lessonRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// requestsToEngine переводит строки заявок в запросы движка.
// Заявки приходят уже в порядке processed_at, порядок сохраняется.
func requestsToEngine(requests []*model.TimeRequest) ([]availability.Request, error) {
	engine := make([]availability.Request, 0, len(requests))
	for _, req := range requests {
		iv, err := availability.ParseInterval(req.StartTime, req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("time request %d: %w", req.ID, err)
		}
		kind := availability.RequestOpen
		if req.RequestType == model.RequestTypeClose {
			kind = availability.RequestClose
		}
		engine = append(engine, availability.Request{Interval: iv, Kind: kind})
	}
	return engine, nil
}

func lessonsToIntervals(lessons []*model.Lesson) ([]availability.Interval, error) {
	intervals := make([]availability.Interval, 0, len(lessons))
	for _, l := range lessons {
		iv, err := availability.ParseInterval(l.StartTime, l.EndTime)
		if err != nil {
			return nil, fmt.Errorf("lesson %d: %w", l.ID, err)
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// OpenRanges возвращает открытое время инструктора на дату:
// свёртку всех approved-заявок, без учёта броней.
func (s *AvailabilityService) OpenRanges(ctx context.Context, instructorID int64, date string) ([]availability.Interval, error) {
	return s.openRanges(ctx, s.requestRepo.Pool(), instructorID, date)
}

func (s *AvailabilityService) openRanges(ctx context.Context, q base.Querier, instructorID int64, date string) ([]availability.Interval, error) {
	requests, err := s.requestRepo.GetApprovedByInstructorDate(ctx, q, instructorID, date)
	if err != nil {
		return nil, fmt.Errorf("get approved requests: %w", err)
	}

	engine, err := requestsToEngine(requests)
	if err != nil {
		return nil, err
	}

	return availability.MergeRequests(engine), nil
}

// BookableRanges возвращает открытое время за вычетом занятых уроков.
func (s *AvailabilityService) BookableRanges(ctx context.Context, instructorID int64, date string) ([]availability.Interval, error) {
	return s.bookableRanges(ctx, s.requestRepo.Pool(), instructorID, date)
}

// bookableRanges принимает Querier, чтобы BookingService мог повторить
// расчёт внутри своей транзакции.
func (s *AvailabilityService) bookableRanges(ctx context.Context, q base.Querier, instructorID int64, date string) ([]availability.Interval, error) {
	open, err := s.openRanges(ctx, q, instructorID, date)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return nil, nil
	}

	lessons, err := s.lessonRepo.GetBookedByInstructorDate(ctx, q, instructorID, date)
	if err != nil {
		return nil, fmt.Errorf("get booked lessons: %w", err)
	}

	booked, err := lessonsToIntervals(lessons)
	if err != nil {
		return nil, err
	}

	return availability.SubtractBookings(open, booked), nil
}

// InstructorSlots возвращает часовые слоты инструктора на дату.
func (s *AvailabilityService) InstructorSlots(ctx context.Context, instructorID int64, date string) ([]availability.Slot, error) {
	bookable, err := s.BookableRanges(ctx, instructorID, date)
	if err != nil {
		return nil, err
	}

	slots := availability.Discretize(bookable, availability.DefaultSlotMinutes, availability.DefaultStepMinutes)

	s.logger.Debug("Computed instructor slots",
		zap.Int64("instructor_id", instructorID),
		zap.String("date", date),
		zap.Int("slots", len(slots)),
	)

	return slots, nil
}

// DateSlots возвращает слоты на дату по всем инструкторам,
// без дублей и по возрастанию времени начала.
func (s *AvailabilityService) DateSlots(ctx context.Context, date string) ([]availability.Slot, error) {
	instructorIDs, err := s.requestRepo.DistinctOpenInstructors(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get instructors with open time: %w", err)
	}

	var all []availability.Slot
	for _, id := range instructorIDs {
		slots, err := s.InstructorSlots(ctx, id, date)
		if err != nil {
			return nil, err
		}
		all = append(all, slots...)
	}

	return availability.DedupeSlots(all), nil
}

// AvailableInstructors возвращает инструкторов, у которых запрошенный
// интервал целиком лежит в доступном времени на дату.
func (s *AvailabilityService) AvailableInstructors(ctx context.Context, date, startTime, endTime string) ([]*model.User, error) {
	want, err := availability.ParseInterval(startTime, endTime)
	if err != nil {
		return nil, err
	}

	instructorIDs, err := s.requestRepo.DistinctOpenInstructors(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get instructors with open time: %w", err)
	}

	var available []*model.User
	for _, id := range instructorIDs {
		bookable, err := s.BookableRanges(ctx, id, date)
		if err != nil {
			return nil, err
		}
		if !availability.ContainedInAny(want, bookable) {
			continue
		}

		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get instructor: %w", err)
		}
		if user == nil {
			continue
		}
		available = append(available, user)
	}

	return available, nil
}

// AvailableDates возвращает даты диапазона, на которые у инструктора
// (или хоть у кого-то, если instructorID == 0) остались слоты.
func (s *AvailabilityService) AvailableDates(ctx context.Context, instructorID int64, from, to string) ([]string, error) {
	dates, err := s.requestRepo.DistinctOpenDates(ctx, instructorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get open dates: %w", err)
	}

	var available []string
	for _, date := range dates {
		var slots []availability.Slot
		if instructorID != 0 {
			slots, err = s.InstructorSlots(ctx, instructorID, date)
		} else {
			slots, err = s.DateSlots(ctx, date)
		}
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			available = append(available, date)
		}
	}

	return available, nil
}
