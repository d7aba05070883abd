package deduction_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/maikolguerrero/payroll-system-server/internal/deduction"
	deductionerrors "github.com/maikolguerrero/payroll-system-server/internal/deduction/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (deduction.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return deduction.NewRepository(gdb), mock
}

func TestRepository_FindByIDs(t *testing.T) {
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()
	query := regexp.QuoteMeta(`SELECT * FROM "deductions" WHERE id IN ($1,$2)`)

	t.Run("all found, duplicates collapse", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(query).
			WithArgs(a.String(), b.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "type", "amount"}).
				AddRow(a.String(), "IVSS", "12.50").
				AddRow(b.String(), "FAOV", "7.50"))

		rows, err := repo.FindByIDs(ctx, []string{a.String(), b.String(), a.String()})

		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.True(t, deduction.Total(rows).Equal(decimal.NewFromInt(20)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing id is not found", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(query).
			WithArgs(a.String(), b.String()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "type", "amount"}).AddRow(a.String(), "IVSS", "12.50"))

		_, err := repo.FindByIDs(ctx, []string{a.String(), b.String()})

		assert.ErrorIs(t, err, deductionerrors.ErrDeductionNotFound)
		assert.Contains(t, err.Error(), b.String())
	})

	t.Run("empty input skips the query", func(t *testing.T) {
		repo, mock := setupRepo(t)

		rows, err := repo.FindByIDs(ctx, nil)

		assert.NoError(t, err)
		assert.Empty(t, rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id", func(t *testing.T) {
		repo, _ := setupRepo(t)

		_, err := repo.FindByIDs(ctx, []string{"nope"})

		assert.ErrorIs(t, err, deductionerrors.ErrInvalidDeductionID)
	})
}
