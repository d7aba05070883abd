package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Attendance struct {
	ID          uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;index:idx_attendance_employee_date"`
	Date        time.Time    `gorm:"column:date;type:date;not null;index:idx_attendance_employee_date"`
	EntryTime   string       `gorm:"column:entry_time;type:varchar(8);not null"`
	ExitTime    string       `gorm:"column:exit_time;type:varchar(8);not null"`
	HoursWorked float64      `gorm:"column:hours_worked;type:numeric(6,2);not null;default:0"`
	CreatedAt   time.Time    `gorm:"column:created_at"`
	UpdatedAt   time.Time    `gorm:"column:updated_at"`
	Employee    *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"column:name"`
	Surnames string    `gorm:"column:surnames"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
