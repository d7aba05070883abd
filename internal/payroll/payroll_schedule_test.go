package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "lunes", WeekdayName(date("2024-01-01")))
	assert.Equal(t, "miércoles", WeekdayName(date("2024-01-03")))
	assert.Equal(t, "sábado", WeekdayName(date("2024-01-06")))
	assert.Equal(t, "domingo", WeekdayName(date("2024-01-07")))
}

func TestSchedule_Evaluate(t *testing.T) {
	weekdays := []string{"lunes", "martes", "miércoles", "jueves", "viernes"}

	tests := []struct {
		name      string
		schedule  Schedule
		start     string
		end       string
		wantHours float64
		wantDays  int
	}{
		{
			name:      "two full weeks",
			schedule:  Schedule{WorkDays: weekdays, DailyHours: 8},
			start:     "2024-01-01",
			end:       "2024-01-14",
			wantHours: 80,
			wantDays:  10,
		},
		{
			name:      "no work days",
			schedule:  Schedule{WorkDays: nil, DailyHours: 8},
			start:     "2024-01-01",
			end:       "2024-01-31",
			wantHours: 0,
			wantDays:  0,
		},
		{
			name:      "single day on a work day",
			schedule:  Schedule{WorkDays: weekdays, DailyHours: 6},
			start:     "2024-01-03",
			end:       "2024-01-03",
			wantHours: 6,
			wantDays:  1,
		},
		{
			name:      "single day off",
			schedule:  Schedule{WorkDays: weekdays, DailyHours: 6},
			start:     "2024-01-06",
			end:       "2024-01-06",
			wantHours: 0,
			wantDays:  0,
		},
		{
			name:      "accent and case insensitive",
			schedule:  Schedule{WorkDays: []string{"Sabado", "MIERCOLES"}, DailyHours: 4},
			start:     "2024-01-01",
			end:       "2024-01-07",
			wantHours: 8,
			wantDays:  2,
		},
		{
			name:      "end before start",
			schedule:  Schedule{WorkDays: weekdays, DailyHours: 8},
			start:     "2024-01-10",
			end:       "2024-01-01",
			wantHours: 0,
			wantDays:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, days := tt.schedule.Evaluate(date(tt.start), date(tt.end))
			assert.Equal(t, tt.wantHours, hours)
			assert.Equal(t, tt.wantDays, days)
		})
	}
}
