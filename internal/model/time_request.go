package model

import "time"

type RequestType string

const (
	RequestTypeOpen  RequestType = "open"  // Открыть время для записи
	RequestTypeClose RequestType = "close" // Закрыть ранее открытое время
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// TimeRequest — заявка инструктора на изменение своей доступности
// на конкретную дату. Создаётся в статусе pending; админ один раз
// переводит её в approved или rejected, после чего заявка становится
// неизменяемой историей. В расчёте доступности участвуют только
// approved-заявки, в порядке ProcessedAt.
type TimeRequest struct {
	ID           int64         `json:"id"`
	InstructorID int64         `json:"instructor_id"`
	RequestDate  string        `json:"request_date"` // "YYYY-MM-DD"
	StartTime    string        `json:"start_time"`   // "HH:MM"
	EndTime      string        `json:"end_time"`     // "HH:MM"
	RequestType  RequestType   `json:"request_type"`
	Status       RequestStatus `json:"status"`
	Reason       string        `json:"reason"`
	AdminID      *int64        `json:"admin_id"`   // кто обработал
	AdminNote    string        `json:"admin_note"` // комментарий админа
	CreatedAt    time.Time     `json:"created_at"`
	ProcessedAt  *time.Time    `json:"processed_at"`

	Instructor *User `json:"instructor,omitempty"`
}

// IsPending проверяет, что заявка ждёт решения.
func (r *TimeRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsApproved проверяет, что заявка одобрена.
func (r *TimeRequest) IsApproved() bool {
	return r.Status == RequestStatusApproved
}

// IsRejected проверяет, что заявка отклонена.
func (r *TimeRequest) IsRejected() bool {
	return r.Status == RequestStatusRejected
}
