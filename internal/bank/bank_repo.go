package bank

import (
	"context"
	"errors"

	bankerrors "github.com/maikolguerrero/payroll-system-server/internal/bank/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=bank_repo.go -destination=mock/bank_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*Bank, error)
	// FindAccounts returns the accounts held at bankID keyed by employee id.
	// Employees without an account there are absent from the map.
	FindAccounts(ctx context.Context, bankID string, employeeIDs []string) (map[string]Account, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Bank, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, bankerrors.ErrInvalidBankID.Withf("id %q", id)
	}

	var b Bank
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, bankerrors.ErrBankNotFound.Withf("id %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindAccounts(ctx context.Context, bankID string, employeeIDs []string) (map[string]Account, error) {
	out := make(map[string]Account, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return out, nil
	}

	var rows []Account
	err := r.db.WithContext(ctx).
		Where("bank_id = ?", bankID).
		Where("employee_id IN ?", employeeIDs).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	// first account wins when an employee holds several at the same bank
	for _, row := range rows {
		key := row.EmployeeID.String()
		if _, ok := out[key]; !ok {
			out[key] = row
		}
	}
	return out, nil
}
