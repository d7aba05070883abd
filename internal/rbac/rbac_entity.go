package rbac

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin      = "admin"
	RoleHR         = "hr"
	RoleAccountant = "accountant"
	RoleViewer     = "viewer"
)

type RolePermission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Role      string    `gorm:"size:50;not null;uniqueIndex:uq_role_permission,priority:1"`
	Resource  string    `gorm:"size:50;not null;uniqueIndex:uq_role_permission,priority:2"`
	Action    string    `gorm:"size:20;not null;uniqueIndex:uq_role_permission,priority:3"`
	CreatedAt time.Time
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

// DefaultPermissions is seeded on startup. Existing rows are left alone.
var DefaultPermissions = []RolePermission{
	{Role: RoleAdmin, Resource: "*", Action: "*"},

	{Role: RoleHR, Resource: "payroll", Action: "create"},
	{Role: RoleHR, Resource: "payroll", Action: "read"},
	{Role: RoleHR, Resource: "payroll", Action: "update"},
	{Role: RoleHR, Resource: "payroll", Action: "delete"},
	{Role: RoleHR, Resource: "attendance", Action: "create"},
	{Role: RoleHR, Resource: "attendance", Action: "read"},

	{Role: RoleAccountant, Resource: "payroll", Action: "read"},
	{Role: RoleAccountant, Resource: "settlement", Action: "create"},
	{Role: RoleAccountant, Resource: "settlement", Action: "read"},

	{Role: RoleViewer, Resource: "payroll", Action: "read"},
	{Role: RoleViewer, Resource: "settlement", Action: "read"},
	{Role: RoleViewer, Resource: "attendance", Action: "read"},
}
