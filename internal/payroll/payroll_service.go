package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/maikolguerrero/payroll-system-server/internal/deduction"
	"github.com/maikolguerrero/payroll-system-server/internal/department"
	"github.com/maikolguerrero/payroll-system-server/internal/employee"
	"github.com/maikolguerrero/payroll-system-server/internal/messaging/kafka"
	payrollerrors "github.com/maikolguerrero/payroll-system-server/internal/payroll/errors"
	"github.com/maikolguerrero/payroll-system-server/internal/perception"
	"github.com/maikolguerrero/payroll-system-server/internal/position"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/apperror"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/clock"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/contextutil"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/lock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, target Target, req GeneratePayrollRequest) (GenerateResult, error)
	Edit(ctx context.Context, target Target, req EditPayrollRequest) (EditResult, error)
	EditByID(ctx context.Context, id string, req EditPayrollRequest) (PayrollResponse, error)
	Delete(ctx context.Context, target Target) (DeleteResult, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context, target Target) ([]PayrollResponse, error)
	ListByPaymentDate(ctx context.Context, date string) ([]PayrollResponse, error)
	ListByPaymentRange(ctx context.Context, start, end string) ([]PayrollResponse, error)
	Report(ctx context.Context, req ReportRequest) ([]byte, error)
}

type EmployeeDirectory interface {
	FindAll(ctx context.Context) ([]employee.Employee, error)
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
	FindByDepartment(ctx context.Context, departmentID string) ([]employee.Employee, error)
	FindByPosition(ctx context.Context, positionID string) ([]employee.Employee, error)
}

type DepartmentFinder interface {
	FindByID(ctx context.Context, id string) (*department.Department, error)
}

type PositionFinder interface {
	GetByID(ctx context.Context, id string) (*position.Position, error)
}

type HoursAggregator interface {
	TotalHoursWorked(ctx context.Context, employeeID string, start, end time.Time) (float64, error)
}

type DeductionCatalog interface {
	FindByIDs(ctx context.Context, ids []string) ([]deduction.Deduction, error)
}

type PerceptionCatalog interface {
	FindByIDs(ctx context.Context, ids []string) ([]perception.Perception, error)
}

type Dependencies struct {
	Employees   EmployeeDirectory
	Departments DepartmentFinder
	Positions   PositionFinder
	Attendance  HoursAggregator
	Deductions  DeductionCatalog
	Perceptions PerceptionCatalog
	Locker      lock.Locker
	Outbox      kafka.OutboxRepository
	Clock       clock.Clock
	Logger      *zap.Logger
	// Workers bounds the per-employee fan-out of a generation batch.
	Workers int
}

const defaultWorkers = 8

type service struct {
	db          *sql.DB
	repo        Repository
	employees   EmployeeDirectory
	positions   PositionFinder
	attendance  HoursAggregator
	deductions  DeductionCatalog
	perceptions PerceptionCatalog
	locker      lock.Locker
	outbox      kafka.OutboxRepository
	clock       clock.Clock
	logger      *zap.Logger
	workers     int
	resolvers   map[Scope]employeeResolver
}

func NewService(db *sql.DB, repo Repository, deps Dependencies) Service {
	logger := zap.L().Named("payroll.service")
	if deps.Logger != nil {
		logger = deps.Logger.Named("payroll.service")
	}
	locker := deps.Locker
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.System()
	}
	workers := deps.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &service{
		db:          db,
		repo:        repo,
		employees:   deps.Employees,
		positions:   deps.Positions,
		attendance:  deps.Attendance,
		deductions:  deps.Deductions,
		perceptions: deps.Perceptions,
		locker:      locker,
		outbox:      deps.Outbox,
		clock:       clk,
		logger:      logger,
		workers:     workers,
		resolvers:   newResolvers(deps.Employees, deps.Departments, deps.Positions),
	}
}

func (s *service) List(ctx context.Context, target Target) ([]PayrollResponse, error) {
	filter := Filter{}
	if target.Scope != ScopeGeneral {
		employees, err := s.resolveEmployees(ctx, target)
		if err != nil {
			return nil, err
		}
		if len(employees) == 0 {
			return []PayrollResponse{}, nil
		}
		filter.EmployeeIDs = employeeIDs(employees)
	}

	payrolls, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) ListByPaymentDate(ctx context.Context, date string) ([]PayrollResponse, error) {
	d, err := parseDate("date", date)
	if err != nil {
		return nil, err
	}

	payrolls, err := s.repo.FindAll(ctx, Filter{PaymentFrom: &d, PaymentTo: &d})
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) ListByPaymentRange(ctx context.Context, start, end string) ([]PayrollResponse, error) {
	from, to, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}

	payrolls, err := s.repo.FindAll(ctx, Filter{PaymentFrom: &from, PaymentTo: &to})
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

// resolveDeductions returns the normalized ids and their flat sum.
func (s *service) resolveDeductions(ctx context.Context, ids []string) ([]string, decimal.Decimal, error) {
	if len(ids) == 0 {
		return []string{}, decimal.Zero, nil
	}
	items, err := s.deductions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID.String())
	}
	return out, deduction.Total(items), nil
}

func (s *service) resolvePerceptions(ctx context.Context, ids []string) ([]string, decimal.Decimal, error) {
	if len(ids) == 0 {
		return []string{}, decimal.Zero, nil
	}
	items, err := s.perceptions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID.String())
	}
	return out, perception.Total(items), nil
}

// computeSalary runs schedule, attendance and calculator for one employee.
// base is always the employee's own salary; the position only supplies the
// schedule.
func (s *service) computeSalary(
	ctx context.Context,
	employeeID, positionID string,
	base decimal.Decimal,
	start, end time.Time,
	deductions, perceptions decimal.Decimal,
) (SalaryResult, error) {
	pos, err := s.positions.GetByID(ctx, positionID)
	if err != nil {
		return SalaryResult{}, err
	}

	standard, _ := Schedule{WorkDays: pos.WorkDays, DailyHours: pos.DailyHours}.Evaluate(start, end)

	worked, err := s.attendance.TotalHoursWorked(ctx, employeeID, start, end)
	if err != nil {
		return SalaryResult{}, err
	}

	res, err := CalculateSalary(SalaryInput{
		BaseSalary:    base,
		StandardHours: standard,
		WorkedHours:   worked,
		Deductions:    deductions,
		Perceptions:   perceptions,
	})
	if err != nil {
		return SalaryResult{}, payrollerrors.ErrComputationInvalid.Withf(
			"employee %s, position %s schedules %.2f hours", employeeID, pos.Name, standard,
		)
	}
	return res, nil
}

func (s *service) enqueue(ctx context.Context, tx *sql.Tx, aggregateType, aggregateID, eventType, topic string, event any) error {
	if s.outbox == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// memberFailure reports whether err concerns a single batch member (missing
// position, bad attendance row, zero hours) rather than the infrastructure.
func memberFailure(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus > 0 && appErr.HTTPStatus < http.StatusInternalServerError
}

func batchError(employeeID, payrollID string, err error) BatchError {
	code := apperror.CodeInternalError
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}
	return BatchError{
		EmployeeID: employeeID,
		PayrollID:  payrollID,
		Code:       code,
		Reason:     err.Error(),
	}
}

func parseDate(field, value string) (time.Time, error) {
	t, err := clock.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat.Withf("%s %q", field, value)
	}
	return t, nil
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	from, err := parseDate("start_date", start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate("end_date", end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateRange.Withf("%s > %s", start, end)
	}
	return from, to, nil
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:             p.ID.String(),
		EmployeeID:     p.EmployeeID.String(),
		Period:         p.Period,
		StartDate:      clock.FormatDate(p.StartDate),
		EndDate:        clock.FormatDate(p.EndDate),
		PaymentDate:    clock.FormatDate(p.PaymentDate),
		BaseSalary:     p.BaseSalary.StringFixed(2),
		OvertimeHours:  p.OvertimeHours,
		Deductions:     nonNil(p.Deductions),
		Perceptions:    nonNil(p.Perceptions),
		GrossSalary:    p.GrossSalary.StringFixed(2),
		NetSalary:      p.NetSalary.StringFixed(2),
		State:          p.State,
		SettlementFile: p.SettlementFile,
	}
	if p.Employee != nil {
		resp.EmployeeCI = p.Employee.CI
		resp.EmployeeName = p.Employee.FullName()
	}
	return resp
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	out := make([]PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		out = append(out, mapToResponse(p))
	}
	return out
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
