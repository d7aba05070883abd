package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/clock"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Filter struct {
	EmployeeID string
	StartDate  *time.Time
	EndDate    *time.Time
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindAll(ctx context.Context, filter Filter) ([]Attendance, error)
	FindByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.GormTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]Attendance, error) {
	q := r.db.WithContext(ctx).Preload("Employee")
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.StartDate != nil {
		q = q.Where("date >= ?", clock.FormatDate(*filter.StartDate))
	}
	if filter.EndDate != nil {
		q = q.Where("date <= ?", clock.FormatDate(*filter.EndDate))
	}

	var rows []Attendance
	err := q.Order("date DESC, entry_time DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date BETWEEN ? AND ?", clock.FormatDate(start), clock.FormatDate(end)).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}
