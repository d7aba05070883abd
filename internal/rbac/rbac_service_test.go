package rbac

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	rows []RolePermission
	err  error
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]RolePermission, error) {
	return f.rows, f.err
}

func (f *fakeRepo) Seed(ctx context.Context, rows []RolePermission) error {
	f.rows = append(f.rows, rows...)
	return nil
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	enforcer, err := NewEnforcer()
	assert.NoError(t, err)
	return NewService(repo, enforcer)
}

func TestService_EnforceDefaults(t *testing.T) {
	repo := &fakeRepo{}
	assert.NoError(t, repo.Seed(context.Background(), DefaultPermissions))
	svc := newTestService(t, repo)
	assert.NoError(t, svc.Reload(context.Background()))

	cases := []struct {
		role, resource, action string
		allowed                bool
	}{
		{RoleAdmin, "settlement", "create", true},
		{RoleAdmin, "role", "manage", true},
		{RoleHR, "payroll", "create", true},
		{RoleHR, "settlement", "create", false},
		{RoleAccountant, "settlement", "create", true},
		{RoleAccountant, "payroll", "delete", false},
		{RoleViewer, "payroll", "read", true},
		{RoleViewer, "payroll", "update", false},
		{"stranger", "payroll", "read", false},
	}
	for _, tc := range cases {
		t.Run(tc.role+"/"+tc.resource+"/"+tc.action, func(t *testing.T) {
			allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}

	assert.Len(t, svc.Permissions(), len(DefaultPermissions))
}

func TestService_ReloadReplacesPolicy(t *testing.T) {
	repo := &fakeRepo{rows: []RolePermission{{Role: RoleViewer, Resource: "payroll", Action: "read"}}}
	svc := newTestService(t, repo)
	assert.NoError(t, svc.Reload(context.Background()))

	allowed, _ := svc.Enforce(RoleViewer, "payroll", "read")
	assert.True(t, allowed)

	repo.rows = nil
	assert.NoError(t, svc.Reload(context.Background()))

	allowed, _ = svc.Enforce(RoleViewer, "payroll", "read")
	assert.False(t, allowed)
	assert.Empty(t, svc.Permissions())
}

func TestService_ReloadError(t *testing.T) {
	svc := newTestService(t, &fakeRepo{err: errors.New("db down")})

	assert.EqualError(t, svc.Reload(context.Background()), "db down")
}
