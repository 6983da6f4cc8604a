package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/skischool/internal/config"
	"github.com/Freeeeeet/skischool/internal/repository"
	"github.com/Freeeeeet/skischool/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App собирает репозитории, сервисы и фоновые задачи портала.
type App struct {
	Availability *service.AvailabilityService
	Booking      *service.BookingService
	TimeRequests *service.TimeRequestService
	Schedule     *service.ScheduleService
	Staff        *service.StaffService

	pool      *pgxpool.Pool
	scheduler *Scheduler
	logger    *zap.Logger
}

// New подключается к базе, применяет миграции и собирает сервисы.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("✅ Connected to database")

	migrator, err := NewMigrator(pool, "migrations")
	if err != nil {
		pool.Close()
		return nil, err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		pool.Close()
		return nil, err
	}
	migrator.Close()

	userRepo := repository.NewUserRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	requestRepo := repository.NewTimeRequestRepository(pool)
	hoursRepo := repository.NewWorkingHoursRepository(pool)
	scheduleRepo := repository.NewAdminScheduleRepository(pool)

	availService := service.NewAvailabilityService(requestRepo, lessonRepo, userRepo, logger)
	bookingService := service.NewBookingService(pool, lessonRepo, userRepo, availService, cfg.CancelLead(), logger)

	a := &App{
		Availability: availService,
		Booking:      bookingService,
		TimeRequests: service.NewTimeRequestService(requestRepo, lessonRepo, logger),
		Schedule:     service.NewScheduleService(hoursRepo, scheduleRepo, lessonRepo, userRepo, availService, logger),
		Staff:        service.NewStaffService(pool, userRepo, logger),
		pool:         pool,
		logger:       logger,
	}
	a.scheduler = NewScheduler(bookingService, cfg.SweepInterval, logger)

	return a, nil
}

// Start запускает фоновые задачи.
func (a *App) Start(ctx context.Context) {
	a.scheduler.Start(ctx)
}

// Close останавливает фоновые задачи и закрывает пул.
func (a *App) Close() {
	a.scheduler.Stop()
	a.pool.Close()
}
