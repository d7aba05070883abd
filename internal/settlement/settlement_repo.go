package settlement

import (
	"context"
	"database/sql"
	"errors"

	settlementerrors "github.com/maikolguerrero/payroll-system-server/internal/settlement/errors"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=settlement_repo.go -destination=mock/settlement_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, file *File) error
	FindAll(ctx context.Context) ([]File, error)
	FindByFileName(ctx context.Context, name string) (*File, error)
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

func (r *repository) Create(ctx context.Context, file *File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *repository) FindAll(ctx context.Context) ([]File, error) {
	var files []File
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&files).Error
	return files, err
}

func (r *repository) FindByFileName(ctx context.Context, name string) (*File, error) {
	var f File
	err := r.db.WithContext(ctx).First(&f, "file_name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, settlementerrors.ErrSettlementNotFound.Withf("file %s", name)
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}
