package payroll

type GeneratePayrollRequest struct {
	Period      string   `json:"period" binding:"required"`
	StartDate   string   `json:"start_date" binding:"required"`
	EndDate     string   `json:"end_date" binding:"required"`
	PaymentDate string   `json:"payment_date" binding:"required"`
	Deductions  []string `json:"deductions" binding:"omitempty,dive,uuid"`
	Perceptions []string `json:"perceptions" binding:"omitempty,dive,uuid"`
}

// EditPayrollRequest is a partial update: nil fields are left untouched.
type EditPayrollRequest struct {
	Period      *string   `json:"period"`
	StartDate   *string   `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	PaymentDate *string   `json:"payment_date"`
	Deductions  *[]string `json:"deductions" binding:"omitempty,dive,uuid"`
	Perceptions *[]string `json:"perceptions" binding:"omitempty,dive,uuid"`
	State       *string   `json:"state" binding:"omitempty,oneof=Generada Pendiente Cancelada"`
}

type PayrollResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeCI     string   `json:"employee_ci,omitempty"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	Period         string   `json:"period"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	PaymentDate    string   `json:"payment_date"`
	BaseSalary     string   `json:"base_salary"`
	OvertimeHours  float64  `json:"overtime_hours"`
	Deductions     []string `json:"deductions"`
	Perceptions    []string `json:"perceptions"`
	GrossSalary    string   `json:"gross_salary"`
	NetSalary      string   `json:"net_salary"`
	State          string   `json:"state"`
	SettlementFile *string  `json:"settlement_file,omitempty"`
}

// BatchError names the member of a batch operation that was left out and why.
type BatchError struct {
	EmployeeID string `json:"employee_id,omitempty"`
	PayrollID  string `json:"payroll_id,omitempty"`
	Code       string `json:"code"`
	Reason     string `json:"reason"`
}

type GenerateResult struct {
	Payrolls []PayrollResponse `json:"payrolls"`
	Errors   []BatchError      `json:"errors"`
}

// Partial reports a multi-status outcome: some employees were skipped.
func (r GenerateResult) Partial() bool {
	return len(r.Errors) > 0
}

type EditResult struct {
	Payrolls []PayrollResponse `json:"payrolls"`
	Skipped  int               `json:"skipped"`
}

type DeleteResult struct {
	Deleted int64 `json:"deleted"`
}

type ReportRequest struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}
