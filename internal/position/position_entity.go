package position

import (
	"time"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/dbtype"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Position struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string            `gorm:"size:255;not null;uniqueIndex:uq_position_name" json:"name"`
	BaseSalary decimal.Decimal   `gorm:"type:numeric(14,2);not null;default:0" json:"base_salary"`
	DailyHours float64           `gorm:"type:numeric(5,2);not null;default:8" json:"daily_hours"`
	Period     string            `gorm:"size:60" json:"period"`
	WorkDays   dbtype.StringList `gorm:"type:jsonb;not null;default:'[]'" json:"work_days"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}
