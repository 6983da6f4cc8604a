package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/Freeeeeet/skischool/internal/availability"
	"github.com/Freeeeeet/skischool/internal/model"
	"github.com/Freeeeeet/skischool/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	// ErrTimeUnavailable — запрошенное время не лежит целиком в доступном.
	ErrTimeUnavailable = errors.New("requested time is not available")
	// ErrTimeConflict — время пересекается с другим занятием.
	ErrTimeConflict = errors.New("requested time conflicts with another lesson")
	// ErrTooLateToCancel — до начала занятия меньше срока отмены.
	ErrTooLateToCancel = errors.New("too late to cancel this lesson")
	// ErrDateInPast — дата уже прошла.
	ErrDateInPast = errors.New("date is in the past")
	// ErrCrossesMidnight — занятие не помещается до конца дня.
	ErrCrossesMidnight = errors.New("lesson would end past midnight")
)

// validateFutureDate проверяет формат даты и что она не раньше
// сегодняшней. Строки "YYYY-MM-DD" сравниваются лексикографически.
func validateFutureDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	if date < time.Now().Format("2006-01-02") {
		return ErrDateInPast
	}
	return nil
}

// AdminLessonMinutes — длительность занятия, добавляемого админом вручную.
const AdminLessonMinutes = 60

// adminLessonInterval считает интервал ручного занятия от времени
// начала. Движок работает в пределах одного дня, поэтому занятие,
// заканчивающееся в полночь или позже, непредставимо и отклоняется.
func adminLessonInterval(startTime string) (availability.Interval, error) {
	start, err := availability.ParseTimeOfDay(startTime)
	if err != nil {
		return availability.Interval{}, fmt.Errorf("start_time: %w", err)
	}
	want := availability.Interval{Start: start, End: start + AdminLessonMinutes}
	if want.End > 24*60-1 {
		return availability.Interval{}, ErrCrossesMidnight
	}
	return want, nil
}

// checkManualLesson решает, можно ли вставить ручное занятие: сперва
// конфликт с существующими занятиями, затем доступность инструктора.
func checkManualLesson(want availability.Interval, booked, bookable []availability.Interval) error {
	if availability.OverlapsAny(want, booked) {
		return ErrTimeConflict
	}
	if !availability.ContainedInAny(want, bookable) {
		return ErrTimeUnavailable
	}
	return nil
}

type BookingService struct {
	pool       *pgxpool.Pool
	lessonRepo *repository.LessonRepository
	userRepo   *repository.UserRepository
	avail      *AvailabilityService
	cancelLead time.Duration
	logger     *zap.Logger
}

func NewBookingService(
	pool *pgxpool.Pool,
	lessonRepo *repository.LessonRepository,
	userRepo *repository.UserRepository,
	avail *AvailabilityService,
	cancelLead time.Duration,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		pool:       pool,
		lessonRepo: lessonRepo,
		userRepo:   userRepo,
		avail:      avail,
		cancelLead: cancelLead,
		logger:     logger,
	}
}

// instructorDayLockKey хеширует пару инструктор+дата в 64-битный ключ
// advisory-блокировки. Коллизия хеша лишь лишний раз сериализует чужие
// брони, корректность от неё не зависит.
func instructorDayLockKey(instructorID int64, date string) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%s", instructorID, date)
	return int64(h.Sum64())
}

// lockInstructorDay берёт advisory-блокировку на пару инструктор+дата
// до конца транзакции. Пока она держится, параллельная бронь того же
// дня того же инструктора ждёт, и проверка доступности не гонится
// со вставкой.
func lockInstructorDay(ctx context.Context, tx pgx.Tx, instructorID int64, date string) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, instructorDayLockKey(instructorID, date))
	if err != nil {
		return fmt.Errorf("lock instructor day: %w", err)
	}
	return nil
}

// BookLesson бронирует занятие клиента у инструктора. Запрошенный
// интервал должен целиком помещаться в доступное время инструктора.
func (s *BookingService) BookLesson(ctx context.Context, customerID, instructorID int64, date, startTime, endTime, notes string) (*model.Lesson, error) {
	want, err := availability.ParseInterval(startTime, endTime)
	if err != nil {
		return nil, err
	}
	if err := validateFutureDate(date); err != nil {
		return nil, err
	}

	instructor, err := s.userRepo.GetByID(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("get instructor: %w", err)
	}
	if instructor == nil || instructor.Role != model.RoleInstructor {
		return nil, fmt.Errorf("instructor not found")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockInstructorDay(ctx, tx, instructorID, date); err != nil {
		return nil, err
	}

	// Доступность считается уже под блокировкой, по данным транзакции.
	bookable, err := s.avail.bookableRanges(ctx, tx, instructorID, date)
	if err != nil {
		return nil, err
	}
	if !availability.ContainedInAny(want, bookable) {
		return nil, ErrTimeUnavailable
	}

	lesson := &model.Lesson{
		CustomerID:   customerID,
		InstructorID: instructorID,
		LessonDate:   date,
		StartTime:    startTime,
		EndTime:      endTime,
		Status:       model.LessonStatusBooked,
		Notes:        notes,
	}

	err = s.lessonRepo.CreateTx(ctx, tx, lesson)
	if err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("Lesson booked",
		zap.Int64("lesson_id", lesson.ID),
		zap.Int64("customer_id", customerID),
		zap.Int64("instructor_id", instructorID),
		zap.String("date", date),
		zap.String("time", want.String()),
	)

	lesson.Instructor = instructor
	return lesson, nil
}

// AddLessonByAdmin добавляет занятие вручную. Длительность
// фиксированная, AdminLessonMinutes; конец считается от начала.
// Как и клиентская бронь, время должно быть открыто заявками
// инструктора и не пересекаться с другими его занятиями.
func (s *BookingService) AddLessonByAdmin(ctx context.Context, adminID, customerID, instructorID int64, date, startTime, notes string) (*model.Lesson, error) {
	want, err := adminLessonInterval(startTime)
	if err != nil {
		return nil, err
	}
	if err := validateFutureDate(date); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockInstructorDay(ctx, tx, instructorID, date); err != nil {
		return nil, err
	}

	open, err := s.avail.openRanges(ctx, tx, instructorID, date)
	if err != nil {
		return nil, err
	}
	existing, err := s.lessonRepo.GetBookedByInstructorDate(ctx, tx, instructorID, date)
	if err != nil {
		return nil, fmt.Errorf("get booked lessons: %w", err)
	}
	booked, err := lessonsToIntervals(existing)
	if err != nil {
		return nil, err
	}
	if err := checkManualLesson(want, booked, availability.SubtractBookings(open, booked)); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		CustomerID:   customerID,
		InstructorID: instructorID,
		LessonDate:   date,
		StartTime:    want.Start.String(),
		EndTime:      want.End.String(),
		Status:       model.LessonStatusBooked,
		Notes:        notes,
	}

	err = s.lessonRepo.CreateTx(ctx, tx, lesson)
	if err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("Lesson added by admin",
		zap.Int64("lesson_id", lesson.ID),
		zap.Int64("admin_id", adminID),
		zap.Int64("instructor_id", instructorID),
		zap.String("date", date),
		zap.String("time", want.String()),
	)

	return lesson, nil
}

// CancelLesson отменяет занятие. Клиент может отменить только своё
// занятие и только заранее, персонал — любое и в любой момент.
func (s *BookingService) CancelLesson(ctx context.Context, lessonID, userID int64, staff bool) error {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("get lesson: %w", err)
	}
	if lesson == nil {
		return fmt.Errorf("lesson not found")
	}

	if !staff && lesson.CustomerID != userID {
		return fmt.Errorf("no permission to cancel this lesson")
	}

	if !lesson.IsBooked() {
		return fmt.Errorf("lesson is not booked")
	}

	if !staff {
		startsAt, err := lesson.StartsAt()
		if err != nil {
			return fmt.Errorf("parse lesson start: %w", err)
		}
		if time.Until(startsAt) < s.cancelLead {
			return ErrTooLateToCancel
		}
	}

	err = s.lessonRepo.UpdateStatus(ctx, lessonID, model.LessonStatusCancelled)
	if err != nil {
		return fmt.Errorf("update lesson status: %w", err)
	}

	s.logger.Info("Lesson cancelled",
		zap.Int64("lesson_id", lessonID),
		zap.Int64("user_id", userID),
		zap.Bool("by_staff", staff),
	)

	return nil
}

// MarkNoShow отмечает, что клиент не пришёл на занятие.
func (s *BookingService) MarkNoShow(ctx context.Context, lessonID int64) error {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("get lesson: %w", err)
	}
	if lesson == nil {
		return fmt.Errorf("lesson not found")
	}
	if !lesson.IsBooked() {
		return fmt.Errorf("lesson is not booked")
	}

	err = s.lessonRepo.UpdateStatus(ctx, lessonID, model.LessonStatusNoShow)
	if err != nil {
		return fmt.Errorf("update lesson status: %w", err)
	}

	s.logger.Info("Lesson marked no-show", zap.Int64("lesson_id", lessonID))
	return nil
}

// CompleteFinishedLessons переводит завершившиеся занятия в completed.
// Запускается планировщиком.
func (s *BookingService) CompleteFinishedLessons(ctx context.Context) (int64, error) {
	now := time.Now()
	affected, err := s.lessonRepo.CompleteFinished(ctx, now.Format("2006-01-02"), now.Format("15:04"))
	if err != nil {
		return 0, fmt.Errorf("complete finished lessons: %w", err)
	}
	return affected, nil
}

// GetByReference находит занятие по публичному коду брони.
func (s *BookingService) GetByReference(ctx context.Context, ref uuid.UUID) (*model.Lesson, error) {
	return s.lessonRepo.GetByReference(ctx, ref)
}

// UpcomingForCustomer получает будущие занятия клиента.
func (s *BookingService) UpcomingForCustomer(ctx context.Context, customerID int64) ([]*model.Lesson, error) {
	now := time.Now()
	return s.lessonRepo.GetUpcomingByCustomer(ctx, customerID, now.Format("2006-01-02"), now.Format("15:04"))
}

// PastForCustomer получает прошедшие занятия клиента.
func (s *BookingService) PastForCustomer(ctx context.Context, customerID int64, limit int) ([]*model.Lesson, error) {
	now := time.Now()
	return s.lessonRepo.GetPastByCustomer(ctx, customerID, now.Format("2006-01-02"), now.Format("15:04"), limit)
}

// PastForInstructor получает прошедшие занятия инструктора.
func (s *BookingService) PastForInstructor(ctx context.Context, instructorID int64) ([]*model.Lesson, error) {
	now := time.Now()
	return s.lessonRepo.GetPastByInstructor(ctx, instructorID, now.Format("2006-01-02"), now.Format("15:04"))
}

// InstructorDay получает все активные занятия инструктора на дату.
func (s *BookingService) InstructorDay(ctx context.Context, instructorID int64, date string) ([]*model.Lesson, error) {
	return s.lessonRepo.GetActiveByInstructorDate(ctx, instructorID, date)
}

// DayLessons получает все занятые занятия на дату по всем инструкторам.
func (s *BookingService) DayLessons(ctx context.Context, date string) ([]*model.Lesson, error) {
	return s.lessonRepo.GetBookedByDate(ctx, date)
}
