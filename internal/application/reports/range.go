package reports

import (
	"fmt"
	"time"

	"github.com/jhoicas/kiosco-api/internal/domain"
)

const dayLayout = "2006-01-02"

// Range período normalizado: Start al inicio de su día UTC, End al último instante de su día UTC.
type Range struct {
	Start time.Time
	End   time.Time
}

// StartDay fecha de inicio como YYYY-MM-DD.
func (r Range) StartDay() string { return r.Start.Format(dayLayout) }

// EndDay fecha de fin como YYYY-MM-DD.
func (r Range) EndDay() string { return r.End.Format(dayLayout) }

// Days cantidad de días calendario cubiertos (ambos extremos inclusive).
func (r Range) Days() int {
	return int(r.End.Sub(r.Start)/(24*time.Hour)) + 1
}

func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeRange lleva start al inicio y end al final de su día en UTC, así un rango de un solo día
// cubre el día completo. maxDays <= 0 desactiva el límite de amplitud.
func NormalizeRange(start, end time.Time, maxDays int) (Range, error) {
	r := Range{
		Start: startOfDay(start),
		End:   startOfDay(end).Add(24*time.Hour - time.Nanosecond),
	}
	if r.Start.After(r.End) {
		return Range{}, &domain.InvalidRangeError{
			Bound:  domain.BoundStartAfterEnd,
			Reason: fmt.Sprintf("start_date %s es posterior a end_date %s", r.StartDay(), r.EndDay()),
		}
	}
	if maxDays > 0 && r.Days() > maxDays {
		return Range{}, &domain.InvalidRangeError{
			Bound:  domain.BoundSpanTooLarge,
			Reason: fmt.Sprintf("el rango cubre %d días; máximo %d", r.Days(), maxDays),
		}
	}
	return r, nil
}

// ParseRange interpreta start_date/end_date (YYYY-MM-DD o RFC3339). Vacíos toman el primer día del mes
// de now y el día de now, respectivamente.
func ParseRange(startStr, endStr string, now time.Time, maxDays int) (Range, error) {
	today := startOfDay(now)
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := today

	if startStr != "" {
		t, err := parseDay(startStr)
		if err != nil {
			return Range{}, &domain.InvalidRangeError{Bound: domain.BoundStart, Reason: fmt.Sprintf("start_date inválida: %q", startStr)}
		}
		start = t
	}
	if endStr != "" {
		t, err := parseDay(endStr)
		if err != nil {
			return Range{}, &domain.InvalidRangeError{Bound: domain.BoundEnd, Reason: fmt.Sprintf("end_date inválida: %q", endStr)}
		}
		end = t
	}
	return NormalizeRange(start, end, maxDays)
}

func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(dayLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
