package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/skischool/internal/service"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	bookingService *service.BookingService
	sweepInterval  time.Duration
	logger         *zap.Logger
	stopChan       chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(bookingService *service.BookingService, sweepInterval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		bookingService: bookingService,
		sweepInterval:  sweepInterval,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runLessonSweepTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runLessonSweepTask периодически закрывает завершившиеся занятия
func (s *Scheduler) runLessonSweepTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.sweepLessons(ctx)

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepLessons(ctx)
		case <-s.stopChan:
			s.logger.Info("Lesson sweep task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Lesson sweep task cancelled")
			return
		}
	}
}

// sweepLessons переводит занятия, чьё время уже прошло, в completed
func (s *Scheduler) sweepLessons(ctx context.Context) {
	completed, err := s.bookingService.CompleteFinishedLessons(ctx)
	if err != nil {
		s.logger.Error("Failed to complete finished lessons", zap.Error(err))
		return
	}

	if completed > 0 {
		s.logger.Info("Finished lessons completed", zap.Int64("count", completed))
	}
}
