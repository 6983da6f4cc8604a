package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/skischool/internal/model"
	"github.com/Freeeeeet/skischool/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WorkingHoursRepository struct {
	*base.Repository
}

func NewWorkingHoursRepository(pool *pgxpool.Pool) *WorkingHoursRepository {
	return &WorkingHoursRepository{Repository: base.NewRepository(pool)}
}

// GetAll получает часы работы по всем дням недели.
func (r *WorkingHoursRepository) GetAll(ctx context.Context) ([]*model.WorkingHours, error) {
	query := `
		SELECT day_of_week, open_time, close_time, is_open
		FROM working_hours
		ORDER BY day_of_week
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get working hours: %w", err)
	}
	defer rows.Close()

	var hours []*model.WorkingHours
	for rows.Next() {
		var wh model.WorkingHours
		if err := rows.Scan(&wh.DayOfWeek, &wh.OpenTime, &wh.CloseTime, &wh.IsOpen); err != nil {
			return nil, fmt.Errorf("scan working hours: %w", err)
		}
		hours = append(hours, &wh)
	}
	return hours, rows.Err()
}

// Upsert сохраняет часы работы одного дня недели.
func (r *WorkingHoursRepository) Upsert(ctx context.Context, wh *model.WorkingHours) error {
	query := `
		INSERT INTO working_hours (day_of_week, open_time, close_time, is_open)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (day_of_week)
		DO UPDATE SET open_time = $2, close_time = $3, is_open = $4
	`

	_, err := r.ExecAffected(ctx, query, wh.DayOfWeek, wh.OpenTime, wh.CloseTime, wh.IsOpen)
	if err != nil {
		return fmt.Errorf("upsert working hours: %w", err)
	}
	return nil
}
