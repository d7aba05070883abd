package position

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	PositionDetailPrefix = "positions:detail:"

	// Positions are maintained by an external catalogue with no change
	// notifications here, so entries must age out quickly.
	positionCacheTTL = 2 * time.Minute
)

func GetPositionDetailKey(id string) string {
	return PositionDetailPrefix + id
}

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	GetByID(ctx context.Context, id string) (*Position, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService wraps the repository with a redis read-through cache. rdb may be nil.
func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("position.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("position.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) GetByID(ctx context.Context, id string) (*Position, error) {
	cacheKey := GetPositionDetailKey(id)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var post Position
			if err := json.Unmarshal([]byte(cached), &post); err == nil {
				return &post, nil
			}
		}
	}

	// Singleflight: satu query DB per posisi walau banyak karyawan diproses paralel
	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		post, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(post); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, positionCacheTTL).Err(); err != nil {
					s.logger.Warn("cache position failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return post, nil
	})
	if err != nil {
		return nil, err
	}

	post := *v.(*Position)
	return &post, nil
}
