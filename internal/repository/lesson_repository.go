package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/skischool/internal/model"
	"github.com/Freeeeeet/skischool/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LessonRepository struct {
	*base.Repository
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{Repository: base.NewRepository(pool)}
}

const lessonColumns = `id, reference, customer_id, instructor_id, lesson_date, start_time, end_time, status, notes, created_at`

func scanLesson(row pgx.Row) (*model.Lesson, error) {
	var lesson model.Lesson
	err := row.Scan(
		&lesson.ID,
		&lesson.Reference,
		&lesson.CustomerID,
		&lesson.InstructorID,
		&lesson.LessonDate,
		&lesson.StartTime,
		&lesson.EndTime,
		&lesson.Status,
		&lesson.Notes,
		&lesson.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func collectLessons(rows pgx.Rows) ([]*model.Lesson, error) {
	defer rows.Close()

	var lessons []*model.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	return lessons, rows.Err()
}

// CreateTx создаёт занятие внутри транзакции вызывающего.
// Бронирование всегда идёт через транзакцию сервиса: проверка
// конфликтов и вставка должны видеть одно и то же состояние.
func (r *LessonRepository) CreateTx(ctx context.Context, q base.Querier, lesson *model.Lesson) error {
	query := `
		INSERT INTO lessons (reference, customer_id, instructor_id, lesson_date, start_time, end_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	if lesson.Reference == uuid.Nil {
		lesson.Reference = uuid.New()
	}

	err := q.QueryRow(
		ctx, query,
		lesson.Reference,
		lesson.CustomerID,
		lesson.InstructorID,
		lesson.LessonDate,
		lesson.StartTime,
		lesson.EndTime,
		lesson.Status,
		lesson.Notes,
	).Scan(&lesson.ID, &lesson.CreatedAt)

	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

// GetByID получает занятие по ID.
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	lesson, err := scanLesson(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}
	return lesson, nil
}

// GetByReference получает занятие по публичному коду брони.
func (r *LessonRepository) GetByReference(ctx context.Context, ref uuid.UUID) (*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE reference = $1`

	lesson, err := scanLesson(r.QueryRow(ctx, query, ref))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by reference: %w", err)
	}
	return lesson, nil
}

// GetBookedByInstructorDate получает забронированные занятия инструктора
// на дату, по возрастанию времени начала.
func (r *LessonRepository) GetBookedByInstructorDate(ctx context.Context, q base.Querier, instructorID int64, date string) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE instructor_id = $1 AND lesson_date = $2 AND status = 'booked'
		ORDER BY start_time
	`

	rows, err := q.Query(ctx, query, instructorID, date)
	if err != nil {
		return nil, fmt.Errorf("get booked lessons: %w", err)
	}
	return collectLessons(rows)
}

// GetActiveByInstructorDate получает занятия инструктора на дату в любом
// статусе, кроме отменённых.
func (r *LessonRepository) GetActiveByInstructorDate(ctx context.Context, instructorID int64, date string) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE instructor_id = $1 AND lesson_date = $2 AND status != 'cancelled'
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, instructorID, date)
	if err != nil {
		return nil, fmt.Errorf("get active lessons: %w", err)
	}
	return collectLessons(rows)
}

// GetBookedByDate получает все забронированные занятия школы на дату.
func (r *LessonRepository) GetBookedByDate(ctx context.Context, date string) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE lesson_date = $1 AND status = 'booked'
		ORDER BY instructor_id, start_time
	`

	rows, err := r.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("get lessons by date: %w", err)
	}
	return collectLessons(rows)
}

// GetUpcomingByCustomer получает будущие забронированные занятия клиента.
func (r *LessonRepository) GetUpcomingByCustomer(ctx context.Context, customerID int64, today, nowTime string) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE customer_id = $1
		  AND status = 'booked'
		  AND (lesson_date > $2 OR (lesson_date = $2 AND end_time >= $3))
		ORDER BY lesson_date, start_time
	`

	rows, err := r.Query(ctx, query, customerID, today, nowTime)
	if err != nil {
		return nil, fmt.Errorf("get upcoming lessons: %w", err)
	}
	return collectLessons(rows)
}

// GetPastByCustomer получает прошедшие занятия клиента, новые первыми.
func (r *LessonRepository) GetPastByCustomer(ctx context.Context, customerID int64, today, nowTime string, limit int) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE customer_id = $1
		  AND (lesson_date < $2
		       OR (lesson_date = $2 AND end_time < $3)
		       OR status IN ('completed', 'cancelled', 'no-show'))
		ORDER BY lesson_date DESC, start_time DESC
		LIMIT $4
	`

	rows, err := r.Query(ctx, query, customerID, today, nowTime, limit)
	if err != nil {
		return nil, fmt.Errorf("get past lessons: %w", err)
	}
	return collectLessons(rows)
}

// GetPastByInstructor получает прошедшие занятия инструктора, новые первыми.
func (r *LessonRepository) GetPastByInstructor(ctx context.Context, instructorID int64, today, nowTime string) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE instructor_id = $1
		  AND (lesson_date < $2 OR (lesson_date = $2 AND end_time < $3))
		ORDER BY lesson_date DESC, start_time DESC
	`

	rows, err := r.Query(ctx, query, instructorID, today, nowTime)
	if err != nil {
		return nil, fmt.Errorf("get instructor history: %w", err)
	}
	return collectLessons(rows)
}

// UpdateStatus обновляет статус занятия.
func (r *LessonRepository) UpdateStatus(ctx context.Context, id int64, status model.LessonStatus) error {
	affected, err := r.ExecAffected(ctx, `UPDATE lessons SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update lesson status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lesson not found")
	}
	return nil
}

// CompleteFinished переводит закончившиеся занятия из booked в completed.
// Возвращает количество обновлённых занятий.
func (r *LessonRepository) CompleteFinished(ctx context.Context, today, nowTime string) (int64, error) {
	query := `
		UPDATE lessons
		SET status = 'completed'
		WHERE status = 'booked'
		  AND (lesson_date < $1 OR (lesson_date = $1 AND end_time <= $2))
	`

	affected, err := r.ExecAffected(ctx, query, today, nowTime)
	if err != nil {
		return 0, fmt.Errorf("complete finished lessons: %w", err)
	}
	return affected, nil
}
