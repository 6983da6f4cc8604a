// Package availability вычисляет доступное время инструктора на одну дату:
// сливает одобренные заявки open/close в открытые интервалы, вычитает
// забронированные занятия и нарезает результат на слоты для записи.
//
// Все времена — это время суток в пределах одного дня ("HH:MM"),
// без таймзон. Интервалы полуоткрытые: [start, end).
package availability

import (
	"fmt"
	"time"
)

// TimeOfDay — минуты с начала дня (00:00).
type TimeOfDay int

// ParseTimeOfDay парсит строку вида "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// String возвращает время в формате "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Clock12 возвращает время в 12-часовом формате ("09:00 AM").
func (t TimeOfDay) Clock12() string {
	ref := time.Date(2000, 1, 1, int(t)/60, int(t)%60, 0, 0, time.UTC)
	return ref.Format("03:04 PM")
}

// Interval — полуоткрытый интервал времени суток [Start, End).
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseInterval парсит пару строк "HH:MM" и проверяет start < end.
func ParseInterval(start, end string) (Interval, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Interval{}, fmt.Errorf("start_time: %w", err)
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Interval{}, fmt.Errorf("end_time: %w", err)
	}
	if s >= e {
		return Interval{}, fmt.Errorf("end_time %s must be after start_time %s", end, start)
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps проверяет строгое пересечение интервалов.
// Соседние интервалы (end == start) НЕ пересекаются — занятия впритык
// друг к другу не конфликтуют.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

// Touches проверяет пересечение или касание интервалов.
// В отличие от Overlaps, граница включается: end == start считается
// касанием, поэтому соседние open-заявки склеиваются в один интервал.
func (iv Interval) Touches(other Interval) bool {
	return iv.Start <= other.End && iv.End >= other.Start
}

// Contains проверяет, что other полностью лежит внутри iv.
func (iv Interval) Contains(other Interval) bool {
	return iv.Start <= other.Start && other.End <= iv.End
}

// Minutes возвращает длину интервала в минутах.
func (iv Interval) Minutes() int {
	return int(iv.End - iv.Start)
}

func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}

// OverlapsAny проверяет строгое пересечение с любым интервалом из набора.
func OverlapsAny(iv Interval, set []Interval) bool {
	for _, other := range set {
		if iv.Overlaps(other) {
			return true
		}
	}
	return false
}

// ContainedInAny проверяет, что интервал целиком помещается
// в один из интервалов набора.
func ContainedInAny(iv Interval, set []Interval) bool {
	for _, other := range set {
		if other.Contains(iv) {
			return true
		}
	}
	return false
}
