package payroll_test

import (
	"context"
	"testing"

	"github.com/maikolguerrero/payroll-system-server/internal/payroll"
	payrollerrors "github.com/maikolguerrero/payroll-system-server/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (payroll.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return payroll.NewRepository(gdb), mock
}

func TestRepository_HasOverlappingPeriod(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.NewString()
	countQuery := `SELECT count\(\*\) FROM "payrolls" WHERE employee_id = \$1 AND .*end_date < \$2 OR start_date > \$3`

	t.Run("overlap", func(t *testing.T) {
		repo, mock := setupRepo(t)
		start, end := mustDate("2024-01-10"), mustDate("2024-01-20")
		mock.ExpectQuery(countQuery).
			WithArgs(employeeID, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		overlap, err := repo.HasOverlappingPeriod(ctx, employeeID, start, end, nil)

		assert.NoError(t, err)
		assert.True(t, overlap)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("adjacent period", func(t *testing.T) {
		repo, mock := setupRepo(t)
		start, end := mustDate("2024-01-16"), mustDate("2024-01-31")
		mock.ExpectQuery(countQuery).
			WithArgs(employeeID, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		overlap, err := repo.HasOverlappingPeriod(ctx, employeeID, start, end, nil)

		assert.NoError(t, err)
		assert.False(t, overlap)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("excludes the edited payroll", func(t *testing.T) {
		repo, mock := setupRepo(t)
		start, end := mustDate("2024-01-01"), mustDate("2024-01-15")
		self := uuid.NewString()
		mock.ExpectQuery(countQuery+`.* AND id <> \$4`).
			WithArgs(employeeID, start, end, self).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		overlap, err := repo.HasOverlappingPeriod(ctx, employeeID, start, end, &self)

		assert.NoError(t, err)
		assert.False(t, overlap)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_MarkPaid(t *testing.T) {
	repo, mock := setupRepo(t)
	ids := []string{uuid.NewString(), uuid.NewString()}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "payrolls" SET .* WHERE .*id IN \(\$\d+,\$\d+\) AND state = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := repo.MarkPaid(context.Background(), ids, mustDate("2024-02-01"), "0102_20240201.txt")

	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	repo, mock := setupRepo(t)
	id := uuid.NewString()

	mock.ExpectQuery(`SELECT \* FROM "payrolls" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), id)

	assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
}
