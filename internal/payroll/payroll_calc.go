package payroll

import (
	"math"

	payrollerrors "github.com/maikolguerrero/payroll-system-server/internal/payroll/errors"

	"github.com/shopspring/decimal"
)

type SalaryInput struct {
	BaseSalary    decimal.Decimal
	StandardHours float64
	WorkedHours   float64
	Deductions    decimal.Decimal
	Perceptions   decimal.Decimal
}

type SalaryResult struct {
	OvertimeHours       float64
	HourlyRate          decimal.Decimal
	SalaryAdjustment    decimal.Decimal
	GrossSalary         decimal.Decimal
	AdjustedGrossSalary decimal.Decimal
	NetSalary           decimal.Decimal
}

// CalculateSalary prices a payroll period.
//
//	overtime   = max(worked - standard, 0)
//	rate       = base / standard
//	adjustment = (standard - worked) * rate
//	gross      = base + overtime*rate + perceptions
//	adjusted   = 0 when worked == 0, else gross - adjustment
//	net        = adjusted - deductions
//
// The adjustment also credits hours above the standard, on top of the
// overtime term. Payroll history depends on that, keep it.
func CalculateSalary(in SalaryInput) (SalaryResult, error) {
	if !isFinite(in.StandardHours) || !isFinite(in.WorkedHours) {
		return SalaryResult{}, payrollerrors.ErrComputationInvalid
	}
	if in.StandardHours <= 0 {
		return SalaryResult{}, payrollerrors.ErrComputationInvalid
	}

	standard := decimal.NewFromFloat(in.StandardHours)
	worked := decimal.NewFromFloat(in.WorkedHours)

	overtime := decimal.Max(worked.Sub(standard), decimal.Zero)
	rate := in.BaseSalary.Div(standard)
	adjustment := standard.Sub(worked).Mul(rate)
	gross := in.BaseSalary.Add(overtime.Mul(rate)).Add(in.Perceptions)

	adjusted := decimal.Zero
	if !worked.IsZero() {
		adjusted = gross.Sub(adjustment)
	}
	net := adjusted.Sub(in.Deductions)

	overtimeHours, _ := overtime.Round(2).Float64()

	return SalaryResult{
		OvertimeHours:       overtimeHours,
		HourlyRate:          rate.Round(2),
		SalaryAdjustment:    adjustment.Round(2),
		GrossSalary:         gross.Round(2),
		AdjustedGrossSalary: adjusted.Round(2),
		NetSalary:           net.Round(2),
	}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
