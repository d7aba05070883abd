package settlement

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/maikolguerrero/payroll-system-server/internal/bank"
	"github.com/maikolguerrero/payroll-system-server/internal/company"
	"github.com/maikolguerrero/payroll-system-server/internal/events"
	"github.com/maikolguerrero/payroll-system-server/internal/messaging/kafka"
	"github.com/maikolguerrero/payroll-system-server/internal/payroll"
	settlementerrors "github.com/maikolguerrero/payroll-system-server/internal/settlement/errors"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/clock"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/contextutil"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/lock"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=settlement_service.go -destination=mock/settlement_service_mock.go -package=mock
type Service interface {
	Export(ctx context.Context, req ExportRequest) (ExportResponse, error)
	GetAll(ctx context.Context) ([]FileResponse, error)
	Open(ctx context.Context, fileName string) (io.ReadCloser, error)
}

type BankDirectory interface {
	FindByID(ctx context.Context, id string) (*bank.Bank, error)
	FindAccounts(ctx context.Context, bankID string, employeeIDs []string) (map[string]bank.Account, error)
}

type CompanyFinder interface {
	FindFirst(ctx context.Context) (*company.Company, error)
}

type Dependencies struct {
	Payrolls  payroll.Repository
	Banks     BankDirectory
	Companies CompanyFinder
	Files     storage.FileStorage
	Locker    lock.Locker
	Outbox    kafka.OutboxRepository
	Clock     clock.Clock
	Logger    *zap.Logger
}

type service struct {
	db        *sql.DB
	repo      Repository
	payrolls  payroll.Repository
	banks     BankDirectory
	companies CompanyFinder
	files     storage.FileStorage
	locker    lock.Locker
	outbox    kafka.OutboxRepository
	clock     clock.Clock
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, deps Dependencies) Service {
	logger := zap.L().Named("settlement.service")
	if deps.Logger != nil {
		logger = deps.Logger.Named("settlement.service")
	}
	locker := deps.Locker
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		db:        db,
		repo:      repo,
		payrolls:  deps.Payrolls,
		banks:     deps.Banks,
		companies: deps.Companies,
		files:     deps.Files,
		locker:    locker,
		outbox:    deps.Outbox,
		clock:     clk,
		logger:    logger,
	}
}

func bankLockKey(bankID string) string {
	return "settlement:bank:" + bankID
}

func parseDate(field, value string) (time.Time, error) {
	t, err := clock.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, settlementerrors.ErrInvalidDateFormat.Withf("%s %q", field, value)
	}
	return t, nil
}

// Export writes the payment file for every Generada payroll lying inside the
// range whose employee has an account at the bank, then marks those payrolls
// Pagada. State is only persisted once the file is stored.
func (s *service) Export(ctx context.Context, req ExportRequest) (ExportResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	from, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return ExportResponse{}, err
	}
	to, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return ExportResponse{}, err
	}
	if from.After(to) {
		return ExportResponse{}, settlementerrors.ErrInvalidDateRange.Withf("%s > %s", req.StartDate, req.EndDate)
	}

	b, err := s.banks.FindByID(ctx, req.BankID)
	if err != nil {
		return ExportResponse{}, err
	}
	comp, err := s.companies.FindFirst(ctx)
	if err != nil {
		return ExportResponse{}, err
	}

	releaseBank, err := s.locker.Acquire(ctx, bankLockKey(b.ID.String()))
	if err != nil {
		return ExportResponse{}, err
	}
	defer releaseBank()

	filter := payroll.Filter{
		States:     []string{payroll.StateGenerated},
		PeriodFrom: &from,
		PeriodTo:   &to,
	}
	preview, err := s.payrolls.FindAll(ctx, filter)
	if err != nil {
		return ExportResponse{}, err
	}
	if len(preview) == 0 {
		return ExportResponse{}, settlementerrors.ErrNoPayrollsToSettle.Withf("%s..%s", req.StartDate, req.EndDate)
	}

	// Amounts are read again once the employees are locked, so a concurrent
	// edit either lands before the file is rendered or waits for the export.
	locked := make(map[string]struct{}, len(preview))
	lockKeys := make([]string, 0, len(preview))
	for _, p := range preview {
		empID := p.EmployeeID.String()
		if _, ok := locked[empID]; ok {
			continue
		}
		locked[empID] = struct{}{}
		lockKeys = append(lockKeys, payroll.EmployeeLockKey(empID))
	}
	releaseEmployees, err := s.locker.Acquire(ctx, lockKeys...)
	if err != nil {
		return ExportResponse{}, err
	}
	defer releaseEmployees()

	fresh, err := s.payrolls.FindAll(ctx, filter)
	if err != nil {
		return ExportResponse{}, err
	}
	candidates := make([]payroll.Payroll, 0, len(fresh))
	for _, p := range fresh {
		if _, ok := locked[p.EmployeeID.String()]; ok {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return ExportResponse{}, settlementerrors.ErrNoPayrollsToSettle.Withf("%s..%s", req.StartDate, req.EndDate)
	}

	employeeIDs := make([]string, 0, len(locked))
	for id := range locked {
		employeeIDs = append(employeeIDs, id)
	}
	accounts, err := s.banks.FindAccounts(ctx, b.ID.String(), employeeIDs)
	if err != nil {
		return ExportResponse{}, err
	}

	lines := make([]Line, 0, len(candidates))
	included := make([]string, 0, len(candidates))
	total := decimal.Zero
	for _, p := range candidates {
		acc, ok := accounts[p.EmployeeID.String()]
		if !ok || p.Employee == nil {
			continue
		}
		lines = append(lines, Line{
			CI:            p.Employee.CI,
			FullName:      p.Employee.FullName(),
			AccountNumber: acc.AccountNumber,
			AccountType:   acc.AccountType,
			NetSalary:     p.NetSalary,
		})
		included = append(included, p.ID.String())
		total = total.Add(p.NetSalary)
	}
	if len(included) == 0 {
		return ExportResponse{}, settlementerrors.ErrNoAccountsAtBank.Withf("bank %s", b.Code)
	}

	runDate := clock.Today(s.clock)
	name := FileName(b.Code, runDate)
	exists, err := s.files.Exists(ctx, name)
	if err != nil {
		return ExportResponse{}, err
	}
	if exists {
		return ExportResponse{}, settlementerrors.ErrSettlementFileExists.Withf("file %s", name)
	}

	path, err := s.files.Save(ctx, name, Render(b.Code, runDate, lines))
	if err != nil {
		log.Error("write settlement file failed", zap.String("file_name", name), zap.Error(err))
		return ExportResponse{}, err
	}

	record := &File{
		ID:           uuid.New(),
		FileName:     name,
		FilePath:     path,
		BankID:       b.ID,
		StartDate:    from,
		EndDate:      to,
		PaymentDate:  runDate,
		PayrollCount: len(included),
	}
	if err := s.persistExport(ctx, record, included); err != nil {
		log.Error("persist settlement failed, discarding file",
			zap.String("file_name", name),
			zap.Error(err),
		)
		if rmErr := s.files.Remove(context.WithoutCancel(ctx), name); rmErr != nil {
			log.Error("discard settlement file failed", zap.String("file_name", name), zap.Error(rmErr))
		}
		return ExportResponse{}, err
	}

	log.Info("settlement export success",
		zap.String("file_name", name),
		zap.String("bank_code", b.Code),
		zap.Int("payroll_count", len(included)),
		zap.Int("skipped_without_account", len(candidates)-len(included)),
	)

	return ExportResponse{
		ID:           record.ID.String(),
		FileName:     name,
		FilePath:     path,
		BankID:       b.ID.String(),
		BankCode:     b.Code,
		Company:      comp.Name,
		PaymentDate:  clock.FormatDate(runDate),
		PayrollCount: len(included),
		TotalAmount:  total.StringFixed(2),
		PayrollIDs:   included,
	}, nil
}

func (s *service) persistExport(ctx context.Context, record *File, payrollIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	marked, err := s.payrolls.WithTx(tx).MarkPaid(ctx, payrollIDs, record.PaymentDate, record.FileName)
	if err != nil {
		return err
	}
	if marked != int64(len(payrollIDs)) {
		return settlementerrors.ErrPayrollsChanged.Withf("%d of %d still Generada", marked, len(payrollIDs))
	}

	if err := s.repo.WithTx(tx).Create(ctx, record); err != nil {
		return err
	}

	if s.outbox != nil {
		event := events.SettlementExportedEvent{
			EventType:    events.SettlementExportedEventType,
			RequestID:    contextutil.GetRequestID(ctx),
			SettlementID: record.ID.String(),
			BankID:       record.BankID.String(),
			FileName:     record.FileName,
			FilePath:     record.FilePath,
			PayrollIDs:   payrollIDs,
			OccurredAt:   s.clock.Now(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     event.RequestID,
			AggregateType: "settlement",
			AggregateID:   record.ID.String(),
			EventType:     event.EventType,
			Topic:         events.SettlementExportedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *service) GetAll(ctx context.Context) ([]FileResponse, error) {
	files, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]FileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, FileResponse{
			ID:           f.ID.String(),
			FileName:     f.FileName,
			FilePath:     f.FilePath,
			BankID:       f.BankID.String(),
			StartDate:    clock.FormatDate(f.StartDate),
			EndDate:      clock.FormatDate(f.EndDate),
			PaymentDate:  clock.FormatDate(f.PaymentDate),
			PayrollCount: f.PayrollCount,
			CreatedAt:    f.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}

// Open streams a recorded settlement file. Unknown names never reach storage.
func (s *service) Open(ctx context.Context, fileName string) (io.ReadCloser, error) {
	record, err := s.repo.FindByFileName(ctx, fileName)
	if err != nil {
		return nil, err
	}
	rc, err := s.files.Open(ctx, record.FileName)
	if errors.Is(err, storage.ErrFileNotFound) {
		return nil, settlementerrors.ErrSettlementNotFound.Withf("file %s", fileName)
	}
	return rc, err
}
