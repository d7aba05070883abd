package attendance

import (
	"context"
	"math"
	"time"

	attendanceerrors "github.com/maikolguerrero/payroll-system-server/internal/attendance/errors"
)

var clockLayouts = []string{"15:04", "15:04:05"}

func parseClock(s string) (time.Time, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, attendanceerrors.ErrInvalidTimeFormat.Withf("value %q", s)
}

// HoursBetween returns exit - entry in hours for two wall-clock strings on
// the same day. The result is negative when exit is before entry.
func HoursBetween(entry, exit string) (float64, error) {
	in, err := parseClock(entry)
	if err != nil {
		return 0, err
	}
	out, err := parseClock(exit)
	if err != nil {
		return 0, err
	}
	return out.Sub(in).Hours(), nil
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// RangeReader is the storage query the aggregator depends on.
type RangeReader interface {
	FindByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
}

type Aggregator struct {
	repo RangeReader
}

func NewAggregator(repo RangeReader) *Aggregator {
	return &Aggregator{repo: repo}
}

// TotalHoursWorked sums exit - entry over the employee's records dated within
// [start, end]. Hours are recomputed from the raw clock strings, never read
// from the stored hours_worked column.
func (a *Aggregator) TotalHoursWorked(ctx context.Context, employeeID string, start, end time.Time) (float64, error) {
	rows, err := a.repo.FindByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return 0, err
	}
	return SumHours(rows)
}

func SumHours(rows []Attendance) (float64, error) {
	var total float64
	for _, row := range rows {
		h, err := HoursBetween(row.EntryTime, row.ExitTime)
		if err != nil {
			return 0, err
		}
		total += h
	}
	return total, nil
}
