package model

import (
	"time"

	"github.com/google/uuid"
)

type LessonStatus string

const (
	LessonStatusBooked    LessonStatus = "booked"    // Забронировано
	LessonStatusCancelled LessonStatus = "cancelled" // Отменено
	LessonStatusCompleted LessonStatus = "completed" // Проведено
	LessonStatusNoShow    LessonStatus = "no-show"   // Клиент не пришёл
)

// Lesson — занятие одного клиента с одним инструктором.
// Дата и время хранятся как строки "YYYY-MM-DD" и "HH:MM" — движок
// доступности работает только с настенными часами одного дня.
type Lesson struct {
	ID           int64        `json:"id"`
	Reference    uuid.UUID    `json:"reference"` // публичный код брони
	CustomerID   int64        `json:"customer_id"`
	InstructorID int64        `json:"instructor_id"`
	LessonDate   string       `json:"lesson_date"`
	StartTime    string       `json:"start_time"`
	EndTime      string       `json:"end_time"`
	Status       LessonStatus `json:"status"`
	Notes        string       `json:"notes"`
	CreatedAt    time.Time    `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	Customer   *User `json:"customer,omitempty"`
	Instructor *User `json:"instructor,omitempty"`
}

// IsActive проверяет, что занятие ещё занимает время инструктора.
func (l *Lesson) IsActive() bool {
	return l.Status != LessonStatusCancelled
}

// IsBooked проверяет, что занятие забронировано и не отменено.
func (l *Lesson) IsBooked() bool {
	return l.Status == LessonStatusBooked
}

// StartsAt собирает дату и время начала занятия.
func (l *Lesson) StartsAt() (time.Time, error) {
	return time.Parse("2006-01-02 15:04", l.LessonDate+" "+l.StartTime)
}

// EndsAt собирает дату и время конца занятия.
func (l *Lesson) EndsAt() (time.Time, error) {
	return time.Parse("2006-01-02 15:04", l.LessonDate+" "+l.EndTime)
}
