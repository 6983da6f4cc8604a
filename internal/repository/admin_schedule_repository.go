package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/skischool/internal/model"
	"github.com/Freeeeeet/skischool/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminScheduleRepository struct {
	*base.Repository
}

func NewAdminScheduleRepository(pool *pgxpool.Pool) *AdminScheduleRepository {
	return &AdminScheduleRepository{Repository: base.NewRepository(pool)}
}

const adminScheduleColumns = `id, admin_id, work_date, start_time, end_time, created_at`

func collectAdminSchedules(rows pgx.Rows) ([]*model.AdminSchedule, error) {
	defer rows.Close()

	var schedules []*model.AdminSchedule
	for rows.Next() {
		var s model.AdminSchedule
		err := rows.Scan(&s.ID, &s.AdminID, &s.WorkDate, &s.StartTime, &s.EndTime, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan admin schedule: %w", err)
		}
		schedules = append(schedules, &s)
	}
	return schedules, rows.Err()
}

// Create создаёт смену администратора.
func (r *AdminScheduleRepository) Create(ctx context.Context, s *model.AdminSchedule) error {
	query := `
		INSERT INTO admin_schedules (admin_id, work_date, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, s.AdminID, s.WorkDate, s.StartTime, s.EndTime).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create admin schedule: %w", err)
	}
	return nil
}

// Update меняет время существующей смены.
func (r *AdminScheduleRepository) Update(ctx context.Context, id int64, startTime, endTime string) error {
	query := `UPDATE admin_schedules SET start_time = $1, end_time = $2 WHERE id = $3`

	affected, err := r.ExecAffected(ctx, query, startTime, endTime, id)
	if err != nil {
		return fmt.Errorf("update admin schedule: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("admin schedule not found")
	}
	return nil
}

// Delete удаляет смену.
func (r *AdminScheduleRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM admin_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete admin schedule: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("admin schedule not found")
	}
	return nil
}

// GetByAdminDate получает смены администратора на дату.
func (r *AdminScheduleRepository) GetByAdminDate(ctx context.Context, adminID int64, date string) ([]*model.AdminSchedule, error) {
	query := `
		SELECT ` + adminScheduleColumns + `
		FROM admin_schedules
		WHERE admin_id = $1 AND work_date = $2
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, adminID, date)
	if err != nil {
		return nil, fmt.Errorf("get admin schedules by date: %w", err)
	}
	return collectAdminSchedules(rows)
}

// GetByAdminBetween получает смены администратора в диапазоне дат.
func (r *AdminScheduleRepository) GetByAdminBetween(ctx context.Context, adminID int64, from, to string) ([]*model.AdminSchedule, error) {
	query := `
		SELECT ` + adminScheduleColumns + `
		FROM admin_schedules
		WHERE admin_id = $1 AND work_date BETWEEN $2 AND $3
		ORDER BY work_date, start_time
	`

	rows, err := r.Query(ctx, query, adminID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get admin schedules: %w", err)
	}
	return collectAdminSchedules(rows)
}

// GetAllBetween получает смены всех администраторов в диапазоне дат.
func (r *AdminScheduleRepository) GetAllBetween(ctx context.Context, from, to string) ([]*model.AdminSchedule, error) {
	query := `
		SELECT ` + adminScheduleColumns + `
		FROM admin_schedules
		WHERE work_date BETWEEN $1 AND $2
		ORDER BY work_date, start_time
	`

	rows, err := r.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("get all admin schedules: %w", err)
	}
	return collectAdminSchedules(rows)
}

// GetByID получает смену по ID.
func (r *AdminScheduleRepository) GetByID(ctx context.Context, id int64) (*model.AdminSchedule, error) {
	query := `SELECT ` + adminScheduleColumns + ` FROM admin_schedules WHERE id = $1`

	var s model.AdminSchedule
	err := r.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.AdminID, &s.WorkDate, &s.StartTime, &s.EndTime, &s.CreatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin schedule by id: %w", err)
	}
	return &s, nil
}
