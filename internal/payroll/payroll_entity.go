package payroll

import (
	"time"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/dbtype"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StateGenerated = "Generada"
	StatePending   = "Pendiente"
	StatePaid      = "Pagada"
	StateCancelled = "Cancelada"
)

// IsTerminalState reports whether a payroll in state s is frozen.
func IsTerminalState(s string) bool {
	return s == StatePaid || s == StateCancelled
}

var terminalStates = []string{StatePaid, StateCancelled}

type Payroll struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID    `gorm:"type:uuid;not null;index:idx_payroll_employee_period"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	Period      string    `gorm:"type:varchar(60);not null"`
	StartDate   time.Time `gorm:"type:date;not null;index:idx_payroll_employee_period"`
	EndDate     time.Time `gorm:"type:date;not null;index:idx_payroll_employee_period"`
	PaymentDate time.Time `gorm:"type:date;not null;index"`

	// BaseSalary is a snapshot of the employee salary at generation time.
	BaseSalary    decimal.Decimal   `gorm:"type:numeric(14,2);not null;default:0"`
	OvertimeHours float64           `gorm:"type:numeric(8,2);not null;default:0"`
	Deductions    dbtype.StringList `gorm:"type:jsonb;not null;default:'[]'"`
	Perceptions   dbtype.StringList `gorm:"type:jsonb;not null;default:'[]'"`
	// GrossSalary holds the adjusted gross (after the short-hours adjustment).
	GrossSalary decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NetSalary   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	State          string  `gorm:"type:varchar(20);not null;default:'Generada';index"`
	SettlementFile *string `gorm:"type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Payroll) IsTerminal() bool {
	return IsTerminalState(p.State)
}

type EmployeeRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CI           string    `gorm:"column:ci"`
	Name         string    `gorm:"column:name"`
	Surnames     string    `gorm:"column:surnames"`
	DepartmentID uuid.UUID `gorm:"column:department_id"`
	PositionID   uuid.UUID `gorm:"column:position_id"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

func (e EmployeeRef) FullName() string {
	if e.Surnames == "" {
		return e.Name
	}
	return e.Name + " " + e.Surnames
}
