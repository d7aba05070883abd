package department

import (
	"context"
	"errors"

	departmenterrors "github.com/maikolguerrero/payroll-system-server/internal/department/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*Department, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Department, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, departmenterrors.ErrInvalidDepartmentID.Withf("id %q", id)
	}

	var dept Department
	err := r.db.WithContext(ctx).First(&dept, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, departmenterrors.ErrDepartmentNotFound.Withf("id %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}
