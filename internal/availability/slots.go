package availability

import "sort"

// Стандартная сетка слотов школы: часовые занятия с шагом полчаса.
const (
	DefaultSlotMinutes = 60
	DefaultStepMinutes = 30
)

// Slot — кандидат на запись, предлагаемый клиенту.
type Slot struct {
	StartTime string `json:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time"`   // "HH:MM"
	Display   string `json:"display"`    // "09:00 AM - 10:00 AM"
}

// Discretize нарезает интервалы на слоты фиксированной длины.
// Шаг меньше длительности, поэтому слоты перекрываются: внутри одного
// интервала клиент видит и "10:00-11:00", и "10:30-11:30" как отдельные
// варианты. Слот [t, t+duration) выдаётся пока t+duration <= конец
// интервала.
func Discretize(intervals []Interval, durationMinutes, stepMinutes int) []Slot {
	if durationMinutes <= 0 || stepMinutes <= 0 {
		return nil
	}

	var slots []Slot
	for _, iv := range intervals {
		for t := iv.Start; t+TimeOfDay(durationMinutes) <= iv.End; t += TimeOfDay(stepMinutes) {
			end := t + TimeOfDay(durationMinutes)
			slots = append(slots, Slot{
				StartTime: t.String(),
				EndTime:   end.String(),
				Display:   t.Clock12() + " - " + end.Clock12(),
			})
		}
	}
	return slots
}

// DedupeSlots убирает дубликаты по паре (start, end) и сортирует слоты
// по началу. Используется при агрегации слотов нескольких инструкторов
// на одну дату.
func DedupeSlots(slots []Slot) []Slot {
	type key struct{ start, end string }
	seen := make(map[key]bool, len(slots))

	unique := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		k := key{slot.StartTime, slot.EndTime}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, slot)
	}

	// "HH:MM" сравнивается лексикографически как время
	sort.Slice(unique, func(a, b int) bool {
		if unique[a].StartTime != unique[b].StartTime {
			return unique[a].StartTime < unique[b].StartTime
		}
		return unique[a].EndTime < unique[b].EndTime
	})
	return unique
}
