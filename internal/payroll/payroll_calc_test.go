package payroll

import (
	"math"
	"testing"

	payrollerrors "github.com/maikolguerrero/payroll-system-server/internal/payroll/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateSalary(t *testing.T) {
	t.Run("worked equals standard", func(t *testing.T) {
		res, err := CalculateSalary(SalaryInput{
			BaseSalary:    dec("800"),
			StandardHours: 160,
			WorkedHours:   160,
		})

		assert.NoError(t, err)
		assert.Equal(t, 0.0, res.OvertimeHours)
		assert.True(t, res.SalaryAdjustment.IsZero())
		assert.True(t, res.NetSalary.Equal(dec("800")), res.NetSalary.String())
	})

	t.Run("overtime with perceptions and deductions", func(t *testing.T) {
		res, err := CalculateSalary(SalaryInput{
			BaseSalary:    dec("1000"),
			StandardHours: 100,
			WorkedHours:   110,
			Deductions:    dec("20"),
			Perceptions:   dec("50"),
		})

		assert.NoError(t, err)
		assert.Equal(t, 10.0, res.OvertimeHours)
		assert.True(t, res.HourlyRate.Equal(dec("10")))
		assert.True(t, res.SalaryAdjustment.Equal(dec("-100")))
		assert.True(t, res.GrossSalary.Equal(dec("1150")))
		assert.True(t, res.AdjustedGrossSalary.Equal(dec("1250")))
		assert.True(t, res.NetSalary.Equal(dec("1230")))
	})

	t.Run("short hours", func(t *testing.T) {
		res, err := CalculateSalary(SalaryInput{
			BaseSalary:    dec("1000"),
			StandardHours: 100,
			WorkedHours:   90,
			Deductions:    dec("20"),
			Perceptions:   dec("50"),
		})

		assert.NoError(t, err)
		assert.Equal(t, 0.0, res.OvertimeHours)
		assert.True(t, res.AdjustedGrossSalary.Equal(dec("950")))
		assert.True(t, res.NetSalary.Equal(dec("930")))
	})

	t.Run("zero worked hours zeroes adjusted gross", func(t *testing.T) {
		res, err := CalculateSalary(SalaryInput{
			BaseSalary:    dec("1500"),
			StandardHours: 120,
			WorkedHours:   0,
			Deductions:    dec("35.5"),
			Perceptions:   dec("200"),
		})

		assert.NoError(t, err)
		assert.True(t, res.AdjustedGrossSalary.IsZero())
		assert.True(t, res.NetSalary.Equal(dec("-35.5")))
	})

	t.Run("rounds to cents", func(t *testing.T) {
		res, err := CalculateSalary(SalaryInput{
			BaseSalary:    dec("1000"),
			StandardHours: 3,
			WorkedHours:   3,
		})

		assert.NoError(t, err)
		assert.True(t, res.HourlyRate.Equal(dec("333.33")))
		assert.True(t, res.NetSalary.Equal(dec("1000")))
	})

	t.Run("zero base salary prices only the concepts", func(t *testing.T) {
		res, err := CalculateSalary(SalaryInput{
			BaseSalary:    decimal.Zero,
			StandardHours: 80,
			WorkedHours:   80,
			Perceptions:   dec("50"),
		})

		assert.NoError(t, err)
		assert.True(t, res.HourlyRate.IsZero())
		assert.True(t, res.NetSalary.Equal(dec("50")))
	})

	t.Run("zero standard hours", func(t *testing.T) {
		_, err := CalculateSalary(SalaryInput{BaseSalary: dec("800"), WorkedHours: 40})
		assert.ErrorIs(t, err, payrollerrors.ErrComputationInvalid)
	})

	t.Run("nan worked hours", func(t *testing.T) {
		_, err := CalculateSalary(SalaryInput{BaseSalary: dec("800"), StandardHours: 40, WorkedHours: math.NaN()})
		assert.ErrorIs(t, err, payrollerrors.ErrComputationInvalid)
	})
}
