package valueobject

import (
	"time"

	"github.com/karravan/booking-backend/internal/pkg/apperror"
)

// DateRange представляет полузакрытый интервал дат [Start, End).
// Выезд и заезд в один и тот же день не считаются пересечением.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange нормализует границы до полуночи UTC и проверяет, что End позже Start.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: truncateToDay(start), End: truncateToDay(end)}
	if !r.End.After(r.Start) {
		return DateRange{}, apperror.New(apperror.ErrCodeValidation, "дата окончания должна быть позже даты начала")
	}
	return r, nil
}

// Nights возвращает количество ночей в интервале.
func (r DateRange) Nights() int {
	return int(r.End.Sub(r.Start) / (24 * time.Hour))
}

// Overlaps проверяет пересечение двух полузакрытых интервалов: s1 < e2 && s2 < e1.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// HasConflict сообщает, пересекается ли кандидат хотя бы с одним из существующих интервалов.
// Чистая функция без побочных эффектов, O(n) по числу интервалов.
func HasConflict(candidate DateRange, existing []DateRange) bool {
	for _, r := range existing {
		if candidate.Overlaps(r) {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
