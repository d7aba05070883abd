package perception

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Perception struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type        string          `gorm:"size:120;not null;uniqueIndex:uq_perception_type"`
	Description string          `gorm:"type:text"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Date        time.Time       `gorm:"type:date"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Total is the flat sum of the amounts; no proration by period length.
func Total(items []Perception) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}
