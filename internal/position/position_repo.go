package position

import (
	"context"
	"errors"

	positionerrors "github.com/maikolguerrero/payroll-system-server/internal/position/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*Position, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Position, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, positionerrors.ErrInvalidPositionID.Withf("id %q", id)
	}

	var post Position
	err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, positionerrors.ErrPositionNotFound.Withf("id %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}
