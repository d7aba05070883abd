package company

import (
	"context"
	"errors"

	companyerrors "github.com/maikolguerrero/payroll-system-server/internal/company/errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	// FindFirst returns the organisation record. The system holds one.
	FindFirst(ctx context.Context) (*Company, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindFirst(ctx context.Context) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, companyerrors.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
