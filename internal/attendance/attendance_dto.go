package attendance

type CreateAttendanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
	EntryTime  string `json:"entry_time" binding:"required"`
	ExitTime   string `json:"exit_time" binding:"required"`
}

type ListAttendanceRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	EntryTime    string  `json:"entry_time"`
	ExitTime     string  `json:"exit_time"`
	HoursWorked  float64 `json:"hours_worked"`
}
