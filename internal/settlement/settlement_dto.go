package settlement

type ExportRequest struct {
	BankID    string `json:"bank_id" binding:"required,uuid"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type ExportResponse struct {
	ID           string   `json:"id"`
	FileName     string   `json:"file_name"`
	FilePath     string   `json:"file_path"`
	BankID       string   `json:"bank_id"`
	BankCode     string   `json:"bank_code"`
	Company      string   `json:"company"`
	PaymentDate  string   `json:"payment_date"`
	PayrollCount int      `json:"payroll_count"`
	TotalAmount  string   `json:"total_amount"`
	PayrollIDs   []string `json:"payroll_ids"`
}

type FileResponse struct {
	ID           string `json:"id"`
	FileName     string `json:"file_name"`
	FilePath     string `json:"file_path"`
	BankID       string `json:"bank_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	PaymentDate  string `json:"payment_date"`
	PayrollCount int    `json:"payroll_count"`
	CreatedAt    string `json:"created_at"`
}
