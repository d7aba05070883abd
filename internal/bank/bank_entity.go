package bank

import (
	"time"

	"github.com/google/uuid"
)

type Bank struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(150);not null"`
	Code      string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_bank_code"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Account binds one employee to one bank.
type Account struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;not null;index"`
	BankID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_bank_account_number,priority:1"`
	AccountNumber string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_bank_account_number,priority:2"`
	AccountType   string    `gorm:"type:varchar(30);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Account) TableName() string {
	return "bank_accounts"
}
