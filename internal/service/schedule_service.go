package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/skischool/internal/availability"
	"github.com/Freeeeeet/skischool/internal/model"
	"github.com/Freeeeeet/skischool/internal/render"
	"github.com/Freeeeeet/skischool/internal/repository"
	"go.uber.org/zap"
)

// ErrShiftConflict — смена пересекается с другой сменой того же админа.
var ErrShiftConflict = errors.New("shift overlaps an existing shift")

// ScheduleService — часы работы школы, смены администраторов и сводная
// картинка дня.
type ScheduleService struct {
	hoursRepo    *repository.WorkingHoursRepository
	scheduleRepo *repository.AdminScheduleRepository
	lessonRepo   *repository.LessonRepository
	userRepo     *repository.UserRepository
	avail        *AvailabilityService
	logger       *zap.Logger
}

func NewScheduleService(
	hoursRepo *repository.WorkingHoursRepository,
	scheduleRepo *repository.AdminScheduleRepository,
	lessonRepo *repository.LessonRepository,
	userRepo *repository.UserRepository,
	avail *AvailabilityService,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		hoursRepo:    hoursRepo,
		scheduleRepo: scheduleRepo,
		lessonRepo:   lessonRepo,
		userRepo:     userRepo,
		avail:        avail,
		logger:       logger,
	}
}

// WeekHours возвращает снимок часов работы школы на неделю.
func (s *ScheduleService) WeekHours(ctx context.Context) (model.WeekHours, error) {
	rows, err := s.hoursRepo.GetAll(ctx)
	if err != nil {
		return model.WeekHours{}, fmt.Errorf("get working hours: %w", err)
	}
	return model.NewWeekHours(rows), nil
}

// SetDayHours задаёт часы работы на день недели (0 = понедельник).
func (s *ScheduleService) SetDayHours(ctx context.Context, dayOfWeek int, openTime, closeTime string, isOpen bool) error {
	if dayOfWeek < 0 || dayOfWeek >= model.DaysPerWeek {
		return fmt.Errorf("day_of_week out of range: %d", dayOfWeek)
	}
	if isOpen {
		if _, err := availability.ParseInterval(openTime, closeTime); err != nil {
			return err
		}
	}

	err := s.hoursRepo.Upsert(ctx, &model.WorkingHours{
		DayOfWeek: dayOfWeek,
		OpenTime:  openTime,
		CloseTime: closeTime,
		IsOpen:    isOpen,
	})
	if err != nil {
		return fmt.Errorf("upsert working hours: %w", err)
	}

	s.logger.Info("Working hours updated",
		zap.Int("day_of_week", dayOfWeek),
		zap.Bool("is_open", isOpen),
	)

	return nil
}

// AddShift добавляет смену администратора. Смены одного админа на одну
// дату не пересекаются.
func (s *ScheduleService) AddShift(ctx context.Context, adminID int64, date, startTime, endTime string) (*model.AdminSchedule, error) {
	want, err := availability.ParseInterval(startTime, endTime)
	if err != nil {
		return nil, err
	}

	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	if admin == nil || !admin.CanManageRequests() {
		return nil, fmt.Errorf("admin not found")
	}

	existing, err := s.scheduleRepo.GetByAdminDate(ctx, adminID, date)
	if err != nil {
		return nil, fmt.Errorf("get admin shifts: %w", err)
	}
	for _, shift := range existing {
		iv, err := availability.ParseInterval(shift.StartTime, shift.EndTime)
		if err != nil {
			return nil, fmt.Errorf("admin schedule %d: %w", shift.ID, err)
		}
		if want.Overlaps(iv) {
			return nil, ErrShiftConflict
		}
	}

	shift := &model.AdminSchedule{
		AdminID:   adminID,
		WorkDate:  date,
		StartTime: startTime,
		EndTime:   endTime,
	}

	err = s.scheduleRepo.Create(ctx, shift)
	if err != nil {
		return nil, fmt.Errorf("create shift: %w", err)
	}

	s.logger.Info("Admin shift added",
		zap.Int64("shift_id", shift.ID),
		zap.Int64("admin_id", adminID),
		zap.String("date", date),
	)

	return shift, nil
}

// UpdateShift меняет время смены с той же проверкой пересечений.
func (s *ScheduleService) UpdateShift(ctx context.Context, shiftID int64, startTime, endTime string) error {
	want, err := availability.ParseInterval(startTime, endTime)
	if err != nil {
		return err
	}

	shift, err := s.scheduleRepo.GetByID(ctx, shiftID)
	if err != nil {
		return fmt.Errorf("get shift: %w", err)
	}
	if shift == nil {
		return fmt.Errorf("shift not found")
	}

	existing, err := s.scheduleRepo.GetByAdminDate(ctx, shift.AdminID, shift.WorkDate)
	if err != nil {
		return fmt.Errorf("get admin shifts: %w", err)
	}
	for _, other := range existing {
		if other.ID == shiftID {
			continue
		}
		iv, err := availability.ParseInterval(other.StartTime, other.EndTime)
		if err != nil {
			return fmt.Errorf("admin schedule %d: %w", other.ID, err)
		}
		if want.Overlaps(iv) {
			return ErrShiftConflict
		}
	}

	err = s.scheduleRepo.Update(ctx, shiftID, startTime, endTime)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}

	s.logger.Info("Admin shift updated", zap.Int64("shift_id", shiftID))
	return nil
}

// DeleteShift удаляет смену.
func (s *ScheduleService) DeleteShift(ctx context.Context, shiftID int64) error {
	err := s.scheduleRepo.Delete(ctx, shiftID)
	if err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}

	s.logger.Info("Admin shift deleted", zap.Int64("shift_id", shiftID))
	return nil
}

// ShiftsBetween получает смены всех админов в диапазоне дат.
func (s *ScheduleService) ShiftsBetween(ctx context.Context, from, to string) ([]*model.AdminSchedule, error) {
	return s.scheduleRepo.GetAllBetween(ctx, from, to)
}

// AdminShiftsBetween получает смены одного админа в диапазоне дат.
func (s *ScheduleService) AdminShiftsBetween(ctx context.Context, adminID int64, from, to string) ([]*model.AdminSchedule, error) {
	return s.scheduleRepo.GetByAdminBetween(ctx, adminID, from, to)
}

// DayGrid собирает сетку дня для рендера: по строке на инструктора,
// в ячейках состояние каждого получаса от открытия до закрытия школы.
func (s *ScheduleService) DayGrid(ctx context.Context, date string) (*render.DayGrid, error) {
	week, err := s.WeekHours(ctx)
	if err != nil {
		return nil, err
	}
	day, err := week.ForDate(date)
	if err != nil {
		return nil, fmt.Errorf("working hours for %s: %w", date, err)
	}

	grid := &render.DayGrid{Date: date, DayName: day.Name}
	if !day.IsOpen {
		return grid, nil
	}

	bounds, err := availability.ParseInterval(day.OpenTime, day.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("working hours for %s: %w", date, err)
	}
	for t := bounds.Start; t < bounds.End; t += availability.DefaultStepMinutes {
		grid.Times = append(grid.Times, t.String())
	}

	instructors, err := s.userRepo.GetByRole(ctx, model.RoleInstructor)
	if err != nil {
		return nil, fmt.Errorf("get instructors: %w", err)
	}

	for _, instructor := range instructors {
		open, err := s.avail.OpenRanges(ctx, instructor.ID, date)
		if err != nil {
			return nil, err
		}

		lessons, err := s.lessonRepo.GetBookedByInstructorDate(ctx, s.lessonRepo.Pool(), instructor.ID, date)
		if err != nil {
			return nil, fmt.Errorf("get booked lessons: %w", err)
		}
		booked, err := lessonsToIntervals(lessons)
		if err != nil {
			return nil, err
		}

		row := render.InstructorRow{Name: instructor.FullName()}
		for t := bounds.Start; t < bounds.End; t += availability.DefaultStepMinutes {
			cell := availability.Interval{Start: t, End: t + availability.DefaultStepMinutes}
			switch {
			case availability.OverlapsAny(cell, booked):
				row.Cells = append(row.Cells, render.CellBooked)
			case availability.ContainedInAny(cell, open):
				row.Cells = append(row.Cells, render.CellOpen)
			default:
				row.Cells = append(row.Cells, render.CellClosed)
			}
		}
		grid.Rows = append(grid.Rows, row)
	}

	return grid, nil
}
