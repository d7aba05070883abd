package payroll

import (
	"context"
	"time"

	payrollerrors "github.com/maikolguerrero/payroll-system-server/internal/payroll/errors"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/clock"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// editPatch holds the parsed fields of an edit request; nil means untouched.
type editPatch struct {
	period      *string
	start       *time.Time
	end         *time.Time
	payment     *time.Time
	deductions  *[]string
	perceptions *[]string
	state       *string
}

func (p editPatch) empty() bool {
	return p.period == nil && p.start == nil && p.end == nil && p.payment == nil &&
		p.deductions == nil && p.perceptions == nil && p.state == nil
}

// interval is the candidate period of pr once the patch is applied.
func (p editPatch) interval(pr Payroll) (time.Time, time.Time) {
	start, end := pr.StartDate, pr.EndDate
	if p.start != nil {
		start = *p.start
	}
	if p.end != nil {
		end = *p.end
	}
	return start, end
}

func (p editPatch) apply(pr *Payroll) {
	if p.period != nil {
		pr.Period = *p.period
	}
	pr.StartDate, pr.EndDate = p.interval(*pr)
	if p.payment != nil {
		pr.PaymentDate = *p.payment
	}
	if p.deductions != nil {
		pr.Deductions = append([]string{}, (*p.deductions)...)
	}
	if p.perceptions != nil {
		pr.Perceptions = append([]string{}, (*p.perceptions)...)
	}
	if p.state != nil {
		pr.State = *p.state
	}
}

func (s *service) parseEditRequest(ctx context.Context, req EditPayrollRequest) (editPatch, error) {
	var patch editPatch

	if req.Period != nil {
		patch.period = req.Period
	}
	if req.StartDate != nil {
		d, err := parseDate("start_date", *req.StartDate)
		if err != nil {
			return editPatch{}, err
		}
		patch.start = &d
	}
	if req.EndDate != nil {
		d, err := parseDate("end_date", *req.EndDate)
		if err != nil {
			return editPatch{}, err
		}
		patch.end = &d
	}
	if patch.start != nil && patch.end != nil && patch.start.After(*patch.end) {
		return editPatch{}, payrollerrors.ErrInvalidDateRange.Withf("%s > %s", *req.StartDate, *req.EndDate)
	}
	if req.PaymentDate != nil {
		d, err := parseDate("payment_date", *req.PaymentDate)
		if err != nil {
			return editPatch{}, err
		}
		patch.payment = &d
	}
	if req.State != nil {
		switch *req.State {
		case StateGenerated, StatePending, StateCancelled:
			patch.state = req.State
		default:
			return editPatch{}, payrollerrors.ErrInvalidState.Withf("got %q", *req.State)
		}
	}
	if req.Deductions != nil {
		ids, _, err := s.resolveDeductions(ctx, *req.Deductions)
		if err != nil {
			return editPatch{}, err
		}
		patch.deductions = &ids
	}
	if req.Perceptions != nil {
		ids, _, err := s.resolvePerceptions(ctx, *req.Perceptions)
		if err != nil {
			return editPatch{}, err
		}
		patch.perceptions = &ids
	}

	if patch.empty() {
		return editPatch{}, payrollerrors.ErrNothingToUpdate
	}
	return patch, nil
}

// Edit applies the patch to every non-terminal payroll of the scope, or to
// none of them when any payroll fails validation.
func (s *service) Edit(ctx context.Context, target Target, req EditPayrollRequest) (EditResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	patch, err := s.parseEditRequest(ctx, req)
	if err != nil {
		return EditResult{}, err
	}

	employees, err := s.resolveEmployees(ctx, target)
	if err != nil {
		return EditResult{}, err
	}
	ids := employeeIDs(employees)
	if len(ids) == 0 {
		return EditResult{}, payrollerrors.ErrNoPayrollsInScope.Withf("%s", target)
	}

	release, err := s.locker.Acquire(ctx, employeeLockKeys(ids)...)
	if err != nil {
		return EditResult{}, err
	}
	defer release()

	payrolls, err := s.repo.FindAll(ctx, Filter{EmployeeIDs: ids})
	if err != nil {
		return EditResult{}, err
	}
	if len(payrolls) == 0 {
		return EditResult{}, payrollerrors.ErrNoPayrollsInScope.Withf("%s", target)
	}

	candidates := make([]Payroll, 0, len(payrolls))
	for _, p := range payrolls {
		if !p.IsTerminal() {
			candidates = append(candidates, p)
		}
	}
	skippedCount := len(payrolls) - len(candidates)

	failures, err := s.validateEdits(ctx, target.Scope, candidates, patch)
	if err != nil {
		return EditResult{}, err
	}
	if len(failures) > 0 {
		log.Warn("edit payroll batch rejected",
			zap.String("scope", target.String()),
			zap.Int("conflicts", len(failures)),
		)
		return EditResult{}, payrollerrors.ErrEditConflicts.WithDetails(failures)
	}

	if len(candidates) > 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return EditResult{}, err
		}
		defer tx.Rollback()

		qtx := s.repo.WithTx(tx)
		for i := range candidates {
			patch.apply(&candidates[i])
			if err := qtx.Update(ctx, &candidates[i]); err != nil {
				log.Error("edit payroll persist failed",
					zap.String("payroll_id", candidates[i].ID.String()),
					zap.Error(err),
				)
				return EditResult{}, err
			}
		}
		if err := tx.Commit(); err != nil {
			return EditResult{}, err
		}
	}

	log.Info("edit payroll batch success",
		zap.String("scope", target.String()),
		zap.Int("updated", len(candidates)),
		zap.Int("skipped", skippedCount),
	)
	return EditResult{Payrolls: mapToListResponse(candidates), Skipped: skippedCount}, nil
}

// validateEdits collects every reason the patch cannot be applied. It never
// writes.
func (s *service) validateEdits(ctx context.Context, scope Scope, candidates []Payroll, patch editPatch) ([]BatchError, error) {
	failures := []BatchError{}

	anomalous := map[string]bool{}
	if scope == ScopeDepartment || scope == ScopePosition {
		perEmployee := map[string]int{}
		for _, p := range candidates {
			perEmployee[p.EmployeeID.String()]++
		}
		for _, p := range candidates {
			empID := p.EmployeeID.String()
			if perEmployee[empID] > 1 && !anomalous[empID] {
				anomalous[empID] = true
				failures = append(failures, batchError(empID, "", payrollerrors.ErrDuplicatePayrollInScope.Withf(
					"employee %s has %d payrolls", empID, perEmployee[empID],
				)))
			}
		}
	}

	type span struct {
		id         string
		start, end time.Time
	}
	proposed := map[string][]span{}

	for _, p := range candidates {
		empID := p.EmployeeID.String()
		if anomalous[empID] {
			continue
		}
		id := p.ID.String()
		start, end := patch.interval(p)
		if start.After(end) {
			failures = append(failures, batchError(empID, id, payrollerrors.ErrInvalidDateRange.Withf(
				"payroll %s: %s > %s", id, clock.FormatDate(start), clock.FormatDate(end),
			)))
			continue
		}

		overlap, err := s.repo.HasOverlappingPeriod(ctx, empID, start, end, &id)
		if err != nil {
			return nil, err
		}
		if !overlap {
			// Two payrolls of the same employee edited into each other.
			for _, other := range proposed[empID] {
				if !start.After(other.end) && !end.Before(other.start) {
					overlap = true
					break
				}
			}
		}
		if overlap {
			failures = append(failures, batchError(empID, id, payrollerrors.ErrPayrollOverlap.Withf(
				"payroll %s, period %s..%s", id, clock.FormatDate(start), clock.FormatDate(end),
			)))
			continue
		}
		proposed[empID] = append(proposed[empID], span{id: id, start: start, end: end})
	}

	return failures, nil
}

// EditByID edits one payroll and prices it again over its new period using
// the base salary captured at generation.
func (s *service) EditByID(ctx context.Context, id string, req EditPayrollRequest) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID.Withf("id %q", id)
	}

	patch, err := s.parseEditRequest(ctx, req)
	if err != nil {
		return PayrollResponse{}, err
	}

	current, release, err := s.lockPayroll(ctx, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer release()

	if current.IsTerminal() {
		return PayrollResponse{}, payrollerrors.ErrPayrollTerminal.Withf("payroll %s is %s", id, current.State)
	}

	start, end := patch.interval(*current)
	if start.After(end) {
		return PayrollResponse{}, payrollerrors.ErrInvalidDateRange.Withf(
			"%s > %s", clock.FormatDate(start), clock.FormatDate(end),
		)
	}

	empID := current.EmployeeID.String()
	overlap, err := s.repo.HasOverlappingPeriod(ctx, empID, start, end, &id)
	if err != nil {
		return PayrollResponse{}, err
	}
	if overlap {
		return PayrollResponse{}, payrollerrors.ErrPayrollOverlap.Withf(
			"employee %s, period %s..%s", empID, clock.FormatDate(start), clock.FormatDate(end),
		)
	}

	patch.apply(current)

	_, deductions, err := s.resolveDeductions(ctx, current.Deductions)
	if err != nil {
		return PayrollResponse{}, err
	}
	_, perceptions, err := s.resolvePerceptions(ctx, current.Perceptions)
	if err != nil {
		return PayrollResponse{}, err
	}

	emp, err := s.employees.FindByID(ctx, empID)
	if err != nil {
		return PayrollResponse{}, err
	}

	calc, err := s.computeSalary(ctx, empID, emp.PositionID.String(), current.BaseSalary, start, end, deductions, perceptions)
	if err != nil {
		return PayrollResponse{}, err
	}
	current.OvertimeHours = calc.OvertimeHours
	current.GrossSalary = calc.AdjustedGrossSalary
	current.NetSalary = calc.NetSalary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, current); err != nil {
		log.Error("edit payroll persist failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	log.Info("edit payroll success",
		zap.String("payroll_id", id),
		zap.String("net_salary", current.NetSalary.StringFixed(2)),
	)
	return mapToResponse(*current), nil
}

// lockPayroll takes the owner's employee lock and returns the payroll as
// read under that lock.
func (s *service) lockPayroll(ctx context.Context, id string) (*Payroll, func(), error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, notFoundWithID(err, id)
	}

	release, err := s.locker.Acquire(ctx, EmployeeLockKey(p.EmployeeID.String()))
	if err != nil {
		return nil, nil, err
	}

	p, err = s.repo.FindByID(ctx, id)
	if err != nil {
		release()
		return nil, nil, notFoundWithID(err, id)
	}
	return p, func() { release() }, nil
}

func notFoundWithID(err error, id string) error {
	if err == payrollerrors.ErrPayrollNotFound {
		return payrollerrors.ErrPayrollNotFound.Withf("id %s", id)
	}
	return err
}

// Delete removes the non-terminal payrolls of every employee in scope.
// Pagada and Cancelada payrolls are left in place and not reported.
func (s *service) Delete(ctx context.Context, target Target) (DeleteResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	employees, err := s.resolveEmployees(ctx, target)
	if err != nil {
		return DeleteResult{}, err
	}
	ids := employeeIDs(employees)
	if len(ids) == 0 {
		return DeleteResult{}, nil
	}

	release, err := s.locker.Acquire(ctx, employeeLockKeys(ids)...)
	if err != nil {
		return DeleteResult{}, err
	}
	defer release()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DeleteResult{}, err
	}
	defer tx.Rollback()

	deleted, err := s.repo.WithTx(tx).DeleteNonTerminalByEmployees(ctx, ids)
	if err != nil {
		log.Error("delete payroll batch failed", zap.String("scope", target.String()), zap.Error(err))
		return DeleteResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return DeleteResult{}, err
	}

	log.Info("delete payroll batch success",
		zap.String("scope", target.String()),
		zap.Int64("deleted", deleted),
	)
	return DeleteResult{Deleted: deleted}, nil
}

func (s *service) DeleteByID(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return payrollerrors.ErrInvalidPayrollID.Withf("id %q", id)
	}

	current, release, err := s.lockPayroll(ctx, id)
	if err != nil {
		return err
	}
	defer release()

	if current.IsTerminal() {
		return payrollerrors.ErrPayrollTerminal.Withf("payroll %s is %s", id, current.State)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deleted, err := s.repo.WithTx(tx).Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return payrollerrors.ErrPayrollNotFound.Withf("id %s", id)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("delete payroll success", zap.String("payroll_id", id))
	return nil
}
