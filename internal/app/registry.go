package app

import (
	"context"
	"database/sql"

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
	"github.com/maikolguerrero/payroll-system-server/internal/shared/lock"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	bankRepo := bank.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	deductionRepo := deduction.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	perceptionRepo := perception.NewRepository(gormDB)
	positionRepo := position.NewRepository(gormDB)
	rbacRepo := rbac.NewRepository(gormDB)
	settlementRepo := settlement.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	if err := rbacService.Reload(ctx); err != nil {
		return err
	}

	// --- Shared infrastructure ---
	var locker lock.Locker = lock.NewLocalLocker()
	if rdb != nil {
		locker = lock.NewRedisLocker(rdb, cfg.LockTTL, logger)
	}

	exports, err := storage.NewLocalStorage(cfg.SettlementExportDir)
	if err != nil {
		return err
	}

	// --- Services ---
	positionService := position.NewService(positionRepo, rdb, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo)
	payrollService := payroll.NewService(db, payrollRepo, payroll.Dependencies{
		Employees:   employeeRepo,
		Departments: departmentRepo,
		Positions:   positionService,
		Attendance:  attendance.NewAggregator(attendanceRepo),
		Deductions:  deductionRepo,
		Perceptions: perceptionRepo,
		Locker:      locker,
		Outbox:      outboxRepo,
		Logger:      logger,
		Workers:     cfg.PayrollWorkers,
	})
	settlementService := settlement.NewService(db, settlementRepo, settlement.Dependencies{
		Payrolls:  payrollRepo,
		Banks:     bankRepo,
		Companies: companyRepo,
		Files:     exports,
		Locker:    locker,
		Outbox:    outboxRepo,
		Logger:    logger,
	})

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	rbacHandler := rbac.NewHandler(rbacService)
	settlementHandler := settlement.NewHandlerWithRedis(settlementService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
		settlement.RegisterRoutes(api, settlementHandler, rbacService, rdb)
	}

	return nil
}
