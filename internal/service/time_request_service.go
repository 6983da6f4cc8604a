package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/skischool/internal/availability"
	"github.com/Freeeeeet/skischool/internal/model"
	"github.com/Freeeeeet/skischool/internal/repository"
	"go.uber.org/zap"
)

var (
	// ErrRequestConflict — заявка пересекается с другой ожидающей заявкой.
	ErrRequestConflict = errors.New("request overlaps a pending request")
	// ErrLessonsInRange — запрошенное время пересекается с активными занятиями.
	ErrLessonsInRange = errors.New("requested range overlaps active lessons")
)

// TimeRequestService — жизненный цикл заявок инструкторов на открытие
// и закрытие времени.
type TimeRequestService struct {
	requestRepo *repository.TimeRequestRepository
	lessonRepo  *repository.LessonRepository
	logger      *zap.Logger
}

func NewTimeRequestService(
	requestRepo *repository.TimeRequestRepository,
	lessonRepo *repository.LessonRepository,
	logger *zap.Logger,
) *TimeRequestService {
	return &TimeRequestService{
		requestRepo: requestRepo,
		lessonRepo:  lessonRepo,
		logger:      logger,
	}
}

// Submit создаёт заявку в статусе pending. Заявка не может
// пересекаться ни с другой ожидающей заявкой того же инструктора на ту
// же дату, ни с его активными занятиями.
func (s *TimeRequestService) Submit(ctx context.Context, instructorID int64, date, startTime, endTime string, reqType model.RequestType, reason string) (*model.TimeRequest, error) {
	if reqType != model.RequestTypeOpen && reqType != model.RequestTypeClose {
		return nil, fmt.Errorf("unexpected request type: %s", reqType)
	}
	want, err := availability.ParseInterval(startTime, endTime)
	if err != nil {
		return nil, err
	}
	if err := validateFutureDate(date); err != nil {
		return nil, err
	}

	pending, err := s.requestRepo.GetPendingByInstructorDate(ctx, instructorID, date)
	if err != nil {
		return nil, fmt.Errorf("get pending requests: %w", err)
	}
	for _, p := range pending {
		iv, err := availability.ParseInterval(p.StartTime, p.EndTime)
		if err != nil {
			return nil, fmt.Errorf("time request %d: %w", p.ID, err)
		}
		if want.Overlaps(iv) {
			return nil, ErrRequestConflict
		}
	}

	lessons, err := s.lessonRepo.GetActiveByInstructorDate(ctx, instructorID, date)
	if err != nil {
		return nil, fmt.Errorf("get active lessons: %w", err)
	}
	taken, err := lessonsToIntervals(lessons)
	if err != nil {
		return nil, err
	}
	if availability.OverlapsAny(want, taken) {
		return nil, ErrLessonsInRange
	}

	req := &model.TimeRequest{
		InstructorID: instructorID,
		RequestDate:  date,
		StartTime:    startTime,
		EndTime:      endTime,
		RequestType:  reqType,
		Reason:       reason,
	}

	err = s.requestRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create time request: %w", err)
	}

	s.logger.Info("Time request submitted",
		zap.Int64("request_id", req.ID),
		zap.Int64("instructor_id", instructorID),
		zap.String("date", date),
		zap.String("type", string(reqType)),
	)

	return req, nil
}

// Approve одобряет ожидающую заявку. Момент одобрения фиксируется
// в processed_at и задаёт порядок применения в расчёте доступности.
func (s *TimeRequestService) Approve(ctx context.Context, requestID, adminID int64, note string) error {
	return s.decide(ctx, requestID, adminID, model.RequestStatusApproved, note)
}

// Reject отклоняет ожидающую заявку.
func (s *TimeRequestService) Reject(ctx context.Context, requestID, adminID int64, note string) error {
	return s.decide(ctx, requestID, adminID, model.RequestStatusRejected, note)
}

func (s *TimeRequestService) decide(ctx context.Context, requestID, adminID int64, status model.RequestStatus, note string) error {
	err := s.requestRepo.Decide(ctx, requestID, status, adminID, note)
	if err != nil {
		return fmt.Errorf("decide time request: %w", err)
	}

	s.logger.Info("Time request processed",
		zap.Int64("request_id", requestID),
		zap.Int64("admin_id", adminID),
		zap.String("status", string(status)),
	)

	return nil
}

// DeletePending удаляет ещё не обработанную заявку самого инструктора.
// Обработанные заявки неизменяемы и не удаляются.
func (s *TimeRequestService) DeletePending(ctx context.Context, requestID, instructorID int64) error {
	err := s.requestRepo.DeletePending(ctx, requestID, instructorID)
	if err != nil {
		return fmt.Errorf("delete pending request: %w", err)
	}

	s.logger.Info("Pending time request deleted",
		zap.Int64("request_id", requestID),
		zap.Int64("instructor_id", instructorID),
	)

	return nil
}

// ListForInstructor получает все заявки инструктора.
func (s *TimeRequestService) ListForInstructor(ctx context.Context, instructorID int64) ([]*model.TimeRequest, error) {
	return s.requestRepo.GetByInstructor(ctx, instructorID)
}

// ListPending получает все ожидающие заявки для разбора админом.
func (s *TimeRequestService) ListPending(ctx context.Context) ([]*model.TimeRequest, error) {
	return s.requestRepo.ListPending(ctx)
}

// ListProcessed получает последние обработанные заявки.
func (s *TimeRequestService) ListProcessed(ctx context.Context, limit int) ([]*model.TimeRequest, error) {
	return s.requestRepo.ListProcessed(ctx, limit)
}

// GetByID получает заявку по ID.
func (s *TimeRequestService) GetByID(ctx context.Context, id int64) (*model.TimeRequest, error) {
	return s.requestRepo.GetByID(ctx, id)
}
