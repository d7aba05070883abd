package employee

import (
	"context"
	"database/sql"

	employeeerrors "github.com/maikolguerrero/payroll-system-server/internal/employee/errors"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByIDs(ctx context.Context, ids []string) ([]Employee, error)
	FindByDepartment(ctx context.Context, departmentID string) ([]Employee, error)
	FindByPosition(ctx context.Context, positionID string) ([]Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.GormTx(r.db, tx)}
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Order("surnames ASC, name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID.Withf("id %q", id)
	}

	var row Employee
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		mapped := mapRepositoryError(err)
		if mapped == employeeerrors.ErrEmployeeNotFound {
			return nil, employeeerrors.ErrEmployeeNotFound.Withf("id %s", id)
		}
		return nil, mapped
	}
	return &row, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]Employee, error) {
	if len(ids) == 0 {
		return []Employee{}, nil
	}
	var rows []Employee
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByDepartment(ctx context.Context, departmentID string) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("surnames ASC, name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByPosition(ctx context.Context, positionID string) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Where("position_id = ?", positionID).
		Order("surnames ASC, name ASC").
		Find(&rows).Error
	return rows, err
}
