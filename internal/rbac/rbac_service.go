package rbac

import (
	"context"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	// Reload replaces the in-memory policy with the stored role permissions.
	Reload(ctx context.Context) error
	Enforce(rvals ...interface{}) (bool, error)
	Permissions() []PermissionResponse
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	loaded   []PermissionResponse
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{repo: repo, enforcer: enforcer, logger: l}
}

func (s *service) Reload(ctx context.Context) error {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}

	rules := make([][]string, 0, len(rows))
	loaded := make([]PermissionResponse, 0, len(rows))
	for _, r := range rows {
		rules = append(rules, []string{r.Role, r.Resource, r.Action})
		loaded = append(loaded, PermissionResponse{Role: r.Role, Resource: r.Resource, Action: r.Action})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	if len(rules) > 0 {
		if _, err := s.enforcer.AddPolicies(rules); err != nil {
			return err
		}
	}
	s.loaded = loaded
	s.logger.Info("rbac policy loaded", zap.Int("role_permissions", len(rules)))
	return nil
}

// Enforce expects (role, resource, action).
func (s *service) Enforce(rvals ...interface{}) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(rvals...)
	if err != nil {
		s.logger.Error("rbac enforce failed", zap.Any("request", rvals), zap.Error(err))
		return false, err
	}
	s.logger.Debug("rbac enforce result", zap.Any("request", rvals), zap.Bool("allowed", allowed))
	return allowed, nil
}

func (s *service) Permissions() []PermissionResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]PermissionResponse, len(s.loaded))
	copy(out, s.loaded)
	return out
}
