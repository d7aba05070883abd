package perception

import (
	"context"

	perceptionerrors "github.com/maikolguerrero/payroll-system-server/internal/perception/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=perception_repo.go -destination=mock/perception_repo_mock.go -package=mock
type Repository interface {
	// FindByIDs fails with not-found when any id is unknown.
	FindByIDs(ctx context.Context, ids []string) ([]Perception, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]Perception, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, perceptionerrors.ErrInvalidPerceptionID.Withf("id %q", id)
		}
		id = parsed.String()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return []Perception{}, nil
	}

	var rows []Perception
	if err := r.db.WithContext(ctx).Where("id IN ?", unique).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) != len(unique) {
		found := make(map[string]struct{}, len(rows))
		for _, row := range rows {
			found[row.ID.String()] = struct{}{}
		}
		for _, id := range unique {
			if _, ok := found[id]; !ok {
				return nil, perceptionerrors.ErrPerceptionNotFound.Withf("id %s", id)
			}
		}
	}
	return rows, nil
}
