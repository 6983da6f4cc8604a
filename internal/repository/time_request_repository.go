package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/skischool/internal/model"
	"github.com/Freeeeeet/skischool/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TimeRequestRepository struct {
	*base.Repository
}

func NewTimeRequestRepository(pool *pgxpool.Pool) *TimeRequestRepository {
	return &TimeRequestRepository{Repository: base.NewRepository(pool)}
}

const timeRequestColumns = `id, instructor_id, request_date, start_time, end_time, request_type, status, reason, admin_id, admin_note, created_at, processed_at`

func scanTimeRequest(row pgx.Row) (*model.TimeRequest, error) {
	var req model.TimeRequest
	err := row.Scan(
		&req.ID,
		&req.InstructorID,
		&req.RequestDate,
		&req.StartTime,
		&req.EndTime,
		&req.RequestType,
		&req.Status,
		&req.Reason,
		&req.AdminID,
		&req.AdminNote,
		&req.CreatedAt,
		&req.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func collectTimeRequests(rows pgx.Rows) ([]*model.TimeRequest, error) {
	defer rows.Close()

	var requests []*model.TimeRequest
	for rows.Next() {
		req, err := scanTimeRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Create создаёт заявку в статусе pending.
func (r *TimeRequestRepository) Create(ctx context.Context, req *model.TimeRequest) error {
	query := `
		INSERT INTO time_requests (instructor_id, request_date, start_time, end_time, request_type, status, reason)
		VALUES ($1, $2, $3, $4, $5, 'pending', $6)
		RETURNING id, status, created_at
	`

	err := r.QueryRow(
		ctx, query,
		req.InstructorID,
		req.RequestDate,
		req.StartTime,
		req.EndTime,
		req.RequestType,
		req.Reason,
	).Scan(&req.ID, &req.Status, &req.CreatedAt)

	if err != nil {
		return fmt.Errorf("create time request: %w", err)
	}

	return nil
}

// GetByID получает заявку по ID.
func (r *TimeRequestRepository) GetByID(ctx context.Context, id int64) (*model.TimeRequest, error) {
	query := `SELECT ` + timeRequestColumns + ` FROM time_requests WHERE id = $1`

	req, err := scanTimeRequest(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get time request by id: %w", err)
	}
	return req, nil
}

// GetApprovedByInstructorDate получает одобренные заявки инструктора на
// дату строго в порядке обработки. Порядок по processed_at обязателен:
// поздние решения админа переопределяют ранние, и движок доступности
// сворачивает заявки именно в этой последовательности.
func (r *TimeRequestRepository) GetApprovedByInstructorDate(ctx context.Context, q base.Querier, instructorID int64, date string) ([]*model.TimeRequest, error) {
	query := `
		SELECT ` + timeRequestColumns + `
		FROM time_requests
		WHERE instructor_id = $1 AND request_date = $2 AND status = 'approved'
		ORDER BY processed_at
	`

	rows, err := q.Query(ctx, query, instructorID, date)
	if err != nil {
		return nil, fmt.Errorf("get approved requests: %w", err)
	}
	return collectTimeRequests(rows)
}

// GetPendingByInstructorDate получает pending-заявки инструктора на дату.
func (r *TimeRequestRepository) GetPendingByInstructorDate(ctx context.Context, instructorID int64, date string) ([]*model.TimeRequest, error) {
	query := `
		SELECT ` + timeRequestColumns + `
		FROM time_requests
		WHERE instructor_id = $1 AND request_date = $2 AND status = 'pending'
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, instructorID, date)
	if err != nil {
		return nil, fmt.Errorf("get pending requests: %w", err)
	}
	return collectTimeRequests(rows)
}

// GetByInstructor получает все заявки инструктора.
func (r *TimeRequestRepository) GetByInstructor(ctx context.Context, instructorID int64) ([]*model.TimeRequest, error) {
	query := `
		SELECT ` + timeRequestColumns + `
		FROM time_requests
		WHERE instructor_id = $1
		ORDER BY request_date, start_time
	`

	rows, err := r.Query(ctx, query, instructorID)
	if err != nil {
		return nil, fmt.Errorf("get requests by instructor: %w", err)
	}
	return collectTimeRequests(rows)
}

// ListPending получает все необработанные заявки школы.
func (r *TimeRequestRepository) ListPending(ctx context.Context) ([]*model.TimeRequest, error) {
	query := `
		SELECT ` + timeRequestColumns + `
		FROM time_requests
		WHERE status = 'pending'
		ORDER BY request_date, start_time
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	return collectTimeRequests(rows)
}

// ListProcessed получает недавно обработанные заявки, новые первыми.
func (r *TimeRequestRepository) ListProcessed(ctx context.Context, limit int) ([]*model.TimeRequest, error) {
	query := `
		SELECT ` + timeRequestColumns + `
		FROM time_requests
		WHERE status IN ('approved', 'rejected')
		ORDER BY processed_at DESC
		LIMIT $1
	`

	rows, err := r.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list processed requests: %w", err)
	}
	return collectTimeRequests(rows)
}

// Decide переводит pending-заявку в approved или rejected и фиксирует
// processed_at. Уже обработанные заявки не трогаются: условие по статусу
// делает переход однократным.
func (r *TimeRequestRepository) Decide(ctx context.Context, id int64, status model.RequestStatus, adminID int64, note string) error {
	query := `
		UPDATE time_requests
		SET status = $1, admin_id = $2, admin_note = $3, processed_at = now()
		WHERE id = $4 AND status = 'pending'
	`

	affected, err := r.ExecAffected(ctx, query, status, adminID, note, id)
	if err != nil {
		return fmt.Errorf("decide time request: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("time request not found or already processed")
	}
	return nil
}

// DeletePending удаляет pending-заявку её владельца.
func (r *TimeRequestRepository) DeletePending(ctx context.Context, id, instructorID int64) error {
	query := `DELETE FROM time_requests WHERE id = $1 AND instructor_id = $2 AND status = 'pending'`

	affected, err := r.ExecAffected(ctx, query, id, instructorID)
	if err != nil {
		return fmt.Errorf("delete pending request: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("time request not found, not yours or already processed")
	}
	return nil
}

// DistinctOpenInstructors получает инструкторов, у которых на дату есть
// одобренные open-заявки.
func (r *TimeRequestRepository) DistinctOpenInstructors(ctx context.Context, date string) ([]int64, error) {
	query := `
		SELECT DISTINCT instructor_id
		FROM time_requests
		WHERE request_date = $1 AND status = 'approved' AND request_type = 'open'
	`

	rows, err := r.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("get open instructors: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan instructor id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DistinctOpenDates получает даты диапазона, на которые есть одобренные
// open-заявки. instructorID == 0 — по всем инструкторам.
func (r *TimeRequestRepository) DistinctOpenDates(ctx context.Context, instructorID int64, from, to string) ([]string, error) {
	query := `
		SELECT DISTINCT request_date
		FROM time_requests
		WHERE status = 'approved'
		  AND request_type = 'open'
		  AND request_date BETWEEN $1 AND $2
		  AND ($3 = 0 OR instructor_id = $3)
		ORDER BY request_date
	`

	rows, err := r.Query(ctx, query, from, to, instructorID)
	if err != nil {
		return nil, fmt.Errorf("get open dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}
