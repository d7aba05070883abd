package payroll

import (
	"bytes"
	"context"
	"fmt"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/clock"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const reportSheet = "Nomina"

var reportHeadings = []string{
	"CI", "Empleado", "Periodo", "Inicio", "Fin", "Fecha de pago",
	"Salario base", "Horas extra", "Salario bruto", "Salario neto", "Estado",
}

// Report renders the payroll register of every payroll whose period lies
// inside [start_date, end_date] as an xlsx workbook.
func (s *service) Report(ctx context.Context, req ReportRequest) ([]byte, error) {
	from, to, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	payrolls, err := s.repo.FindAll(ctx, Filter{PeriodFrom: &from, PeriodTo: &to})
	if err != nil {
		return nil, err
	}

	content, err := renderRegister(payrolls)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("render payroll register failed", zap.Error(err))
		return nil, err
	}
	return content, nil
}

func renderRegister(payrolls []Payroll) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}

	for i, h := range reportHeadings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(reportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	gross, net := decimal.Zero, decimal.Zero
	row := 2
	for _, p := range payrolls {
		ci, name := "", ""
		if p.Employee != nil {
			ci, name = p.Employee.CI, p.Employee.FullName()
		}
		baseSalary, _ := p.BaseSalary.Float64()
		grossSalary, _ := p.GrossSalary.Float64()
		netSalary, _ := p.NetSalary.Float64()

		values := []any{
			ci, name, p.Period,
			clock.FormatDate(p.StartDate), clock.FormatDate(p.EndDate), clock.FormatDate(p.PaymentDate),
			baseSalary, p.OvertimeHours, grossSalary, netSalary, p.State,
		}
		if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, err
		}

		gross = gross.Add(p.GrossSalary)
		net = net.Add(p.NetSalary)
		row++
	}

	grossTotal, _ := gross.Round(2).Float64()
	netTotal, _ := net.Round(2).Float64()
	totals := []any{"Total", "", "", "", "", "", "", "", grossTotal, netTotal, ""}
	if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", row), &totals); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
