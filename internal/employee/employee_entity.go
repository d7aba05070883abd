package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	GenderMale   = "Masculino"
	GenderFemale = "Femenino"
)

type Employee struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CI           string          `gorm:"column:ci;size:20;not null;uniqueIndex:uq_employee_ci"`
	Name         string          `gorm:"size:120;not null"`
	Surnames     string          `gorm:"size:120;not null"`
	Email        string          `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	Phone        string          `gorm:"size:30"`
	Address      string          `gorm:"type:text"`
	BaseSalary   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	HireDate     time.Time       `gorm:"type:date;not null"`
	DepartmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PositionID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Gender       string          `gorm:"size:10;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.Name + " " + e.Surnames)
}
