package model

import "time"

// Нумерация дней недели как в исходной схеме: 0 = понедельник.
const DaysPerWeek = 7

var dayNames = [DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WorkingHours — часы работы школы в один день недели.
type WorkingHours struct {
	DayOfWeek int    `json:"day_of_week"` // 0-6, 0 = понедельник
	OpenTime  string `json:"open_time"`   // "HH:MM"
	CloseTime string `json:"close_time"`  // "HH:MM"
	IsOpen    bool   `json:"is_open"`
}

// DayHours — часы одного дня внутри WeekHours.
type DayHours struct {
	Name      string `json:"name"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsOpen    bool   `json:"is_open"`
}

// WeekHours — неизменяемый снимок часов работы на всю неделю,
// индекс 0-6 (0 = понедельник). Собирается один раз на запрос из строк
// таблицы working_hours; дни без строки получают часы по умолчанию.
type WeekHours [DaysPerWeek]DayHours

// NewWeekHours строит WeekHours из строк таблицы. Для дней без записи
// действует значение по умолчанию 09:00-17:00, открыто.
func NewWeekHours(rows []*WorkingHours) WeekHours {
	var week WeekHours
	for day := 0; day < DaysPerWeek; day++ {
		week[day] = DayHours{
			Name:      dayNames[day],
			OpenTime:  "09:00",
			CloseTime: "17:00",
			IsOpen:    true,
		}
	}
	for _, row := range rows {
		if row.DayOfWeek < 0 || row.DayOfWeek >= DaysPerWeek {
			continue
		}
		week[row.DayOfWeek] = DayHours{
			Name:      dayNames[row.DayOfWeek],
			OpenTime:  row.OpenTime,
			CloseTime: row.CloseTime,
			IsOpen:    row.IsOpen,
		}
	}
	return week
}

// ForDate возвращает часы работы для календарной даты "YYYY-MM-DD".
func (w WeekHours) ForDate(date string) (DayHours, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return DayHours{}, err
	}
	return w[weekdayIndex(d.Weekday())], nil
}

// weekdayIndex переводит time.Weekday (0 = воскресенье) в индекс схемы
// (0 = понедельник).
func weekdayIndex(wd time.Weekday) int {
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}
