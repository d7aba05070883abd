package payroll

import (
	"context"
	"database/sql"
	"time"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter narrows FindAll. Zero values mean "no constraint".
type Filter struct {
	EmployeeIDs []string
	States      []string
	// PaymentFrom/PaymentTo bound payment_date inclusively.
	PaymentFrom *time.Time
	PaymentTo   *time.Time
	// PeriodFrom/PeriodTo select payrolls whose whole period lies inside the window.
	PeriodFrom *time.Time
	PeriodTo   *time.Time
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateBatch(ctx context.Context, payrolls []Payroll) error
	FindByID(ctx context.Context, id string) (*Payroll, error)
	FindAll(ctx context.Context, filter Filter) ([]Payroll, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, periodStart time.Time, periodEnd time.Time, excludePayrollID *string) (bool, error)
	Update(ctx context.Context, payroll *Payroll) error
	MarkPaid(ctx context.Context, ids []string, paymentDate time.Time, settlementFile string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	DeleteNonTerminalByEmployees(ctx context.Context, employeeIDs []string) (int64, error)
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

const createBatchSize = 200

func (r *repository) CreateBatch(ctx context.Context, payrolls []Payroll) error {
	if len(payrolls) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		CreateInBatches(&payrolls, createBatchSize).Error
	return mapRepositoryError(err)
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &p, nil
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]Payroll, error) {
	var payrolls []Payroll
	q := r.db.WithContext(ctx).Model(&Payroll{}).Preload("Employee")

	if len(filter.EmployeeIDs) > 0 {
		q = q.Where("employee_id IN ?", filter.EmployeeIDs)
	}
	if len(filter.States) > 0 {
		q = q.Where("state IN ?", filter.States)
	}
	if filter.PaymentFrom != nil {
		q = q.Where("payment_date >= ?", *filter.PaymentFrom)
	}
	if filter.PaymentTo != nil {
		q = q.Where("payment_date <= ?", *filter.PaymentTo)
	}
	if filter.PeriodFrom != nil {
		q = q.Where("start_date >= ?", *filter.PeriodFrom)
	}
	if filter.PeriodTo != nil {
		q = q.Where("end_date <= ?", *filter.PeriodTo)
	}

	err := q.Order("payment_date DESC").Order("created_at DESC").Find(&payrolls).Error
	return payrolls, err
}

// HasOverlappingPeriod reports whether the employee already holds a payroll
// whose inclusive period intersects [periodStart, periodEnd].
func (r *repository) HasOverlappingPeriod(
	ctx context.Context,
	employeeID string,
	periodStart time.Time,
	periodEnd time.Time,
	excludePayrollID *string,
) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("employee_id = ?", employeeID).
		Where("NOT (end_date < ? OR start_date > ?)", periodStart, periodEnd)

	if excludePayrollID != nil && *excludePayrollID != "" {
		q = q.Where("id <> ?", *excludePayrollID)
	}

	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) Update(ctx context.Context, payroll *Payroll) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(payroll).Error
	return mapRepositoryError(err)
}

// MarkPaid flips Generada payrolls to Pagada. Rows already moved by someone
// else are not touched; callers compare the affected count.
func (r *repository) MarkPaid(ctx context.Context, ids []string, paymentDate time.Time, settlementFile string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("id IN ? AND state = ?", ids, StateGenerated).
		Updates(map[string]any{
			"state":           StatePaid,
			"payment_date":    paymentDate,
			"settlement_file": settlementFile,
			"updated_at":      time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

// Delete removes a non-terminal payroll. Zero affected rows means the payroll
// is gone or already Pagada/Cancelada.
func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND state NOT IN ?", id, terminalStates).
		Delete(&Payroll{})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteNonTerminalByEmployees(ctx context.Context, employeeIDs []string) (int64, error) {
	if len(employeeIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("employee_id IN ? AND state NOT IN ?", employeeIDs, terminalStates).
		Delete(&Payroll{})
	return res.RowsAffected, res.Error
}
