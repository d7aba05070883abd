package payroll

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// weekdayNames follows the naming stored in positions.work_days.
var weekdayNames = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
}

// WeekdayName returns the localized weekday of t ("lunes", "sábado", ...).
func WeekdayName(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

var foldCaser = cases.Fold()

// normalizeDayName lower-cases and strips diacritics so "Sábado", "sabado"
// and " SABADO " compare equal.
func normalizeDayName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return foldCaser.String(out)
}

type Schedule struct {
	WorkDays   []string
	DailyHours float64
}

// Evaluate walks every calendar day of [start, end] and counts those whose
// weekday is a work day. It returns scheduled days * daily hours and the
// number of scheduled days.
func (s Schedule) Evaluate(start, end time.Time) (float64, int) {
	if len(s.WorkDays) == 0 {
		return 0, 0
	}

	workDays := make(map[string]struct{}, len(s.WorkDays))
	for _, d := range s.WorkDays {
		workDays[normalizeDayName(d)] = struct{}{}
	}

	from := dateOnly(start)
	to := dateOnly(end)

	days := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if _, ok := workDays[normalizeDayName(WeekdayName(d))]; ok {
			days++
		}
	}
	return float64(days) * s.DailyHours, days
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
