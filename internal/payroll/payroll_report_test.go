package payroll

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestRenderRegister(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	payrolls := []Payroll{
		{
			Employee:    &EmployeeRef{CI: "V-1", Name: "Ana", Surnames: "Pérez"},
			Period:      "Quincenal",
			StartDate:   day(1),
			EndDate:     day(15),
			PaymentDate: day(16),
			BaseSalary:  dec("800"),
			GrossSalary: dec("800"),
			NetSalary:   dec("750.25"),
			State:       StateGenerated,
		},
		{
			Employee:    &EmployeeRef{CI: "V-2", Name: "Luis", Surnames: "Rojas"},
			Period:      "Quincenal",
			StartDate:   day(1),
			EndDate:     day(15),
			PaymentDate: day(16),
			BaseSalary:  dec("600"),
			GrossSalary: dec("450"),
			NetSalary:   dec("449.75"),
			State:       StateGenerated,
		},
	}

	content, err := renderRegister(payrolls)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if !assert.NoError(t, err) {
		return
	}
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	assert.NoError(t, err)
	if assert.Len(t, rows, 4) {
		assert.Equal(t, reportHeadings, rows[0])
		assert.Equal(t, "V-1", rows[1][0])
		assert.Equal(t, "Ana Pérez", rows[1][1])
		assert.Equal(t, "2024-01-16", rows[1][5])
		assert.Equal(t, "Total", rows[3][0])
		assert.Equal(t, "1250", rows[3][8])
		assert.Equal(t, "1200", rows[3][9])
	}
}

func TestRenderRegister_Empty(t *testing.T) {
	content, err := renderRegister(nil)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if !assert.NoError(t, err) {
		return
	}
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
}
