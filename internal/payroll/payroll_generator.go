package payroll

import (
	"context"
	"strings"
	"time"

	"github.com/maikolguerrero/payroll-system-server/internal/employee"
	"github.com/maikolguerrero/payroll-system-server/internal/events"
	payrollerrors "github.com/maikolguerrero/payroll-system-server/internal/payroll/errors"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/apperror"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/clock"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type generationInput struct {
	period        string
	start         time.Time
	end           time.Time
	payment       time.Time
	deductionIDs  []string
	perceptionIDs []string
	deductions    decimal.Decimal
	perceptions   decimal.Decimal
}

// generation is the outcome for one employee: either a built payroll or the
// reason it was left out of the batch.
type generation struct {
	payroll *Payroll
	failure *BatchError
	cause   error
}

func parseGenerateRequest(req GeneratePayrollRequest) (generationInput, error) {
	if strings.TrimSpace(req.Period) == "" {
		return generationInput{}, apperror.RequiredField("period")
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return generationInput{}, err
	}
	payment, err := parseDate("payment_date", req.PaymentDate)
	if err != nil {
		return generationInput{}, err
	}
	return generationInput{
		period:  req.Period,
		start:   start,
		end:     end,
		payment: payment,
	}, nil
}

func (s *service) Generate(ctx context.Context, target Target, req GeneratePayrollRequest) (GenerateResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	in, err := parseGenerateRequest(req)
	if err != nil {
		return GenerateResult{}, err
	}

	employees, err := s.resolveEmployees(ctx, target)
	if err != nil {
		return GenerateResult{}, err
	}
	if len(employees) == 0 {
		return GenerateResult{}, payrollerrors.ErrNoEmployeesInScope.Withf("%s", target)
	}

	if in.deductionIDs, in.deductions, err = s.resolveDeductions(ctx, req.Deductions); err != nil {
		return GenerateResult{}, err
	}
	if in.perceptionIDs, in.perceptions, err = s.resolvePerceptions(ctx, req.Perceptions); err != nil {
		return GenerateResult{}, err
	}

	release, err := s.locker.Acquire(ctx, employeeLockKeys(employeeIDs(employees))...)
	if err != nil {
		return GenerateResult{}, err
	}
	defer release()

	outcomes := make([]generation, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range employees {
		g.Go(func() error {
			out, err := s.buildPayroll(gctx, employees[i], in)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("generate payroll batch failed", zap.String("scope", target.String()), zap.Error(err))
		return GenerateResult{}, err
	}

	result := GenerateResult{Payrolls: []PayrollResponse{}, Errors: []BatchError{}}
	built := make([]Payroll, 0, len(outcomes))
	var firstCause error
	for _, o := range outcomes {
		if o.failure != nil {
			result.Errors = append(result.Errors, *o.failure)
			if firstCause == nil {
				firstCause = o.cause
			}
			continue
		}
		built = append(built, *o.payroll)
	}

	// A single employee has nobody else to succeed for.
	if target.Scope == ScopeEmployee && firstCause != nil {
		return GenerateResult{}, firstCause
	}

	if len(built) > 0 {
		if err := s.persistGenerated(ctx, target, in, built, len(result.Errors)); err != nil {
			log.Error("persist generated payrolls failed", zap.String("scope", target.String()), zap.Error(err))
			return GenerateResult{}, err
		}
	}

	for _, p := range built {
		result.Payrolls = append(result.Payrolls, mapToResponse(p))
	}

	log.Info("generate payroll batch success",
		zap.String("scope", target.String()),
		zap.Int("created", len(built)),
		zap.Int("skipped", len(result.Errors)),
	)
	return result, nil
}

func (s *service) buildPayroll(ctx context.Context, emp employee.Employee, in generationInput) (generation, error) {
	empID := emp.ID.String()

	overlap, err := s.repo.HasOverlappingPeriod(ctx, empID, in.start, in.end, nil)
	if err != nil {
		return generation{}, err
	}
	if overlap {
		return skipped(empID, "", payrollerrors.ErrPayrollOverlap.Withf(
			"employee %s, period %s..%s", empID, clock.FormatDate(in.start), clock.FormatDate(in.end),
		)), nil
	}

	calc, err := s.computeSalary(ctx, empID, emp.PositionID.String(), emp.BaseSalary, in.start, in.end, in.deductions, in.perceptions)
	if err != nil {
		if memberFailure(err) {
			return skipped(empID, "", err), nil
		}
		return generation{}, err
	}

	return generation{payroll: &Payroll{
		ID:            uuid.New(),
		EmployeeID:    emp.ID,
		Employee:      &EmployeeRef{ID: emp.ID, CI: emp.CI, Name: emp.Name, Surnames: emp.Surnames},
		Period:        in.period,
		StartDate:     in.start,
		EndDate:       in.end,
		PaymentDate:   in.payment,
		BaseSalary:    emp.BaseSalary.Round(2),
		OvertimeHours: calc.OvertimeHours,
		Deductions:    in.deductionIDs,
		Perceptions:   in.perceptionIDs,
		GrossSalary:   calc.AdjustedGrossSalary,
		NetSalary:     calc.NetSalary,
		State:         StateGenerated,
	}}, nil
}

func skipped(employeeID, payrollID string, cause error) generation {
	be := batchError(employeeID, payrollID, cause)
	return generation{failure: &be, cause: cause}
}

func (s *service) persistGenerated(ctx context.Context, target Target, in generationInput, built []Payroll, failed int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateBatch(ctx, built); err != nil {
		return err
	}

	ids := make([]string, 0, len(built))
	for _, p := range built {
		ids = append(ids, p.ID.String())
	}
	event := events.PayrollGeneratedEvent{
		EventType:   events.PayrollGeneratedEventType,
		RequestID:   contextutil.GetRequestID(ctx),
		Scope:       string(target.Scope),
		ScopeID:     target.ID,
		PayrollIDs:  ids,
		Period:      in.period,
		StartDate:   clock.FormatDate(in.start),
		EndDate:     clock.FormatDate(in.end),
		FailedCount: failed,
		OccurredAt:  s.clock.Now(),
	}
	aggregateID := target.ID
	if aggregateID == "" {
		aggregateID = ids[0]
	}
	if err := s.enqueue(ctx, tx, "payroll", aggregateID, event.EventType, events.PayrollLifecycleTopic, event); err != nil {
		return err
	}

	return tx.Commit()
}
