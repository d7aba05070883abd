package app

import (
	"context"

	"github.com/maikolguerrero/payroll-system-server/internal/attendance"
	"github.com/maikolguerrero/payroll-system-server/internal/bank"
	"github.com/maikolguerrero/payroll-system-server/internal/company"
	"github.com/maikolguerrero/payroll-system-server/internal/deduction"
	"github.com/maikolguerrero/payroll-system-server/internal/department"
	"github.com/maikolguerrero/payroll-system-server/internal/employee"
	"github.com/maikolguerrero/payroll-system-server/internal/messaging/kafka"
	"github.com/maikolguerrero/payroll-system-server/internal/payroll"
	"github.com/maikolguerrero/payroll-system-server/internal/perception"
	"github.com/maikolguerrero/payroll-system-server/internal/position"
	"github.com/maikolguerrero/payroll-system-server/internal/rbac"
	"github.com/maikolguerrero/payroll-system-server/internal/settlement"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Storage-level backstop for the overlap rule: two payrolls of one employee
// never share a calendar day, whatever their state.
const payrollExclusionConstraint = `
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'ex_payroll_employee_period') THEN
		ALTER TABLE payrolls
			ADD CONSTRAINT ex_payroll_employee_period
			EXCLUDE USING gist (employee_id WITH =, daterange(start_date, end_date, '[]') WITH &&);
	END IF;
END
$$;
`

func Migrate(ctx context.Context, db *gorm.DB) error {
	log := zap.L().Named("app.migrate")

	if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&company.Company{},
		&department.Department{},
		&position.Position{},
		&employee.Employee{},
		&bank.Bank{},
		&bank.Account{},
		&deduction.Deduction{},
		&perception.Perception{},
		&attendance.Attendance{},
		&payroll.Payroll{},
		&settlement.File{},
		&rbac.RolePermission{},
	); err != nil {
		return err
	}

	if err := db.WithContext(ctx).Exec(payrollExclusionConstraint).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Exec(kafka.OutboxSchema).Error; err != nil {
		return err
	}

	if err := rbac.NewRepository(db).Seed(ctx, rbac.DefaultPermissions); err != nil {
		return err
	}

	log.Info("schema migrated")
	return nil
}
