package model

import "time"

// AdminSchedule — рабочая смена администратора.
type AdminSchedule struct {
	ID        int64     `json:"id"`
	AdminID   int64     `json:"admin_id"`
	WorkDate  string    `json:"work_date"`  // "YYYY-MM-DD"
	StartTime string    `json:"start_time"` // "HH:MM"
	EndTime   string    `json:"end_time"`   // "HH:MM"
	CreatedAt time.Time `json:"created_at"`

	Admin *User `json:"admin,omitempty"`
}
