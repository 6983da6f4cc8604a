package availability

import "sort"

// RequestKind — тип заявки инструктора на изменение доступности.
type RequestKind string

const (
	RequestOpen  RequestKind = "open"  // Добавить доступное время
	RequestClose RequestKind = "close" // Убрать доступное время
)

// Request — одна одобренная заявка в порядке обработки.
// Вызывающий обязан отсортировать заявки по времени одобрения
// (processed_at): более поздние решения переопределяют более ранние.
type Request struct {
	Interval Interval
	Kind     RequestKind
}

// MergeRequests сворачивает последовательность одобренных заявок
// в итоговый набор открытых интервалов. Заявки применяются строго
// по порядку: close может вырезать ранее открытое время, а следующий
// open — открыть его заново.
func MergeRequests(requests []Request) []Interval {
	var open []Interval

	for _, req := range requests {
		switch req.Kind {
		case RequestOpen:
			open = addInterval(open, req.Interval)
		case RequestClose:
			open = cutInterval(open, req.Interval)
		}
	}

	return open
}

// SubtractBookings вычитает забронированные занятия из открытых
// интервалов. Каждое занятие применяется полностью до следующего —
// та же пятивариантная логика, что и для close-заявок.
func SubtractBookings(open []Interval, bookings []Interval) []Interval {
	result := open
	for _, booking := range bookings {
		result = cutInterval(result, booking)
	}
	return result
}

// addInterval вливает новый интервал в набор: все пересекающиеся
// и касающиеся интервалы поглощаются (min start, max end), результат
// остаётся отсортированным по началу.
func addInterval(open []Interval, nr Interval) []Interval {
	i := 0
	for i < len(open) {
		if nr.Touches(open[i]) {
			if open[i].Start < nr.Start {
				nr.Start = open[i].Start
			}
			if open[i].End > nr.End {
				nr.End = open[i].End
			}
			open = append(open[:i], open[i+1:]...)
		} else {
			i++
		}
	}

	open = append(open, nr)
	sort.Slice(open, func(a, b int) bool { return open[a].Start < open[b].Start })
	return open
}

// cutInterval вырезает cut из каждого интервала набора.
// Пять непересекающихся случаев:
//  1. cut накрывает интервал целиком — интервал выбрасывается;
//  2. cut строго внутри — интервал распадается на два;
//  3. cut накрывает начало — остаётся хвост после cut;
//  4. cut накрывает конец — остаётся голова до cut;
//  5. нет пересечения — интервал не меняется.
func cutInterval(open []Interval, cut Interval) []Interval {
	updated := make([]Interval, 0, len(open))

	for _, iv := range open {
		switch {
		case cut.Start <= iv.Start && cut.End >= iv.End:
			// накрыт целиком
		case cut.Start > iv.Start && cut.End < iv.End:
			updated = append(updated,
				Interval{Start: iv.Start, End: cut.Start},
				Interval{Start: cut.End, End: iv.End},
			)
		case cut.Start <= iv.Start && cut.End > iv.Start && cut.End < iv.End:
			updated = append(updated, Interval{Start: cut.End, End: iv.End})
		case cut.Start > iv.Start && cut.Start < iv.End && cut.End >= iv.End:
			updated = append(updated, Interval{Start: iv.Start, End: cut.Start})
		default:
			updated = append(updated, iv)
		}
	}

	return updated
}
