package attendance

import (
	"context"
	"database/sql"

	attendanceerrors "github.com/maikolguerrero/payroll-system-server/internal/attendance/errors"
	"github.com/maikolguerrero/payroll-system-server/internal/employee"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/clock"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, req ListAttendanceRequest) ([]AttendanceResponse, error)
}

type EmployeeFinder interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeFinder
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees EmployeeFinder) Service {
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		logger:    zap.L().Named("attendance.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	date, err := clock.ParseDate(req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}
	hours, err := HoursBetween(req.EntryTime, req.ExitTime)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if hours <= 0 {
		return AttendanceResponse{}, attendanceerrors.ErrExitBeforeEntry
	}

	emp, err := s.employees.FindByID(ctx, req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row := &Attendance{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		Date:        date,
		EntryTime:   req.EntryTime,
		ExitTime:    req.ExitTime,
		HoursWorked: roundHours(hours),
		Employee:    &EmployeeRef{ID: emp.ID, Name: emp.Name, Surnames: emp.Surnames},
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("attendance registered",
		zap.String("attendance_id", row.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Float64("hours_worked", row.HoursWorked),
	)

	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, req ListAttendanceRequest) ([]AttendanceResponse, error) {
	filter := Filter{EmployeeID: req.EmployeeID}
	if req.StartDate != "" {
		d, err := clock.ParseDate(req.StartDate)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDateFormat
		}
		filter.StartDate = &d
	}
	if req.EndDate != "" {
		d, err := clock.ParseDate(req.EndDate)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDateFormat
		}
		filter.EndDate = &d
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]AttendanceResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapToResponse(row))
	}
	return out, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:          a.ID.String(),
		EmployeeID:  a.EmployeeID.String(),
		Date:        clock.FormatDate(a.Date),
		EntryTime:   a.EntryTime,
		ExitTime:    a.ExitTime,
		HoursWorked: a.HoursWorked,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.Name + " " + a.Employee.Surnames
	}
	return resp
}
