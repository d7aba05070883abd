package payroll

import (
	"context"
	"strings"

	"github.com/maikolguerrero/payroll-system-server/internal/employee"
	payrollerrors "github.com/maikolguerrero/payroll-system-server/internal/payroll/errors"
)

type Scope string

const (
	ScopeGeneral    Scope = "general"
	ScopeEmployee   Scope = "employee"
	ScopeDepartment Scope = "department"
	ScopePosition   Scope = "position"
)

// Target selects the employee set a batch operation runs over. ID is empty
// for the general scope.
type Target struct {
	Scope Scope
	ID    string
}

func (t Target) String() string {
	if t.ID == "" {
		return string(t.Scope)
	}
	return string(t.Scope) + ":" + t.ID
}

type employeeResolver func(ctx context.Context, id string) ([]employee.Employee, error)

// newResolvers maps every scope to the lookup that yields its employees. The
// referenced department/position/employee must exist; an empty department is
// not an error here.
func newResolvers(employees EmployeeDirectory, departments DepartmentFinder, positions PositionFinder) map[Scope]employeeResolver {
	return map[Scope]employeeResolver{
		ScopeGeneral: func(ctx context.Context, _ string) ([]employee.Employee, error) {
			return employees.FindAll(ctx)
		},
		ScopeEmployee: func(ctx context.Context, id string) ([]employee.Employee, error) {
			emp, err := employees.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return []employee.Employee{*emp}, nil
		},
		ScopeDepartment: func(ctx context.Context, id string) ([]employee.Employee, error) {
			if _, err := departments.FindByID(ctx, id); err != nil {
				return nil, err
			}
			return employees.FindByDepartment(ctx, id)
		},
		ScopePosition: func(ctx context.Context, id string) ([]employee.Employee, error) {
			if _, err := positions.GetByID(ctx, id); err != nil {
				return nil, err
			}
			return employees.FindByPosition(ctx, id)
		},
	}
}

func (s *service) resolveEmployees(ctx context.Context, target Target) ([]employee.Employee, error) {
	resolve, ok := s.resolvers[target.Scope]
	if !ok {
		return nil, payrollerrors.ErrInvalidScope.Withf("scope %q", target.Scope)
	}
	if target.Scope != ScopeGeneral && strings.TrimSpace(target.ID) == "" {
		return nil, payrollerrors.ErrInvalidScope.Withf("scope %q requires an id", target.Scope)
	}
	return resolve(ctx, target.ID)
}

func employeeIDs(employees []employee.Employee) []string {
	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID.String())
	}
	return ids
}

// EmployeeLockKey is the lock guarding every payroll mutation of one employee.
func EmployeeLockKey(employeeID string) string {
	return "payroll:employee:" + employeeID
}

func employeeLockKeys(ids []string) []string {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, EmployeeLockKey(id))
	}
	return keys
}
