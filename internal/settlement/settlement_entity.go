package settlement

import (
	"time"

	"github.com/google/uuid"
)

// File records one produced bank payment file.
type File struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FileName     string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_settlement_file_name"`
	FilePath     string    `gorm:"type:text;not null"`
	BankID       uuid.UUID `gorm:"type:uuid;not null;index"`
	StartDate    time.Time `gorm:"type:date;not null"`
	EndDate      time.Time `gorm:"type:date;not null"`
	PaymentDate  time.Time `gorm:"type:date;not null"`
	PayrollCount int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

func (File) TableName() string {
	return "settlement_files"
}
