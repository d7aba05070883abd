package kafka

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestOutboxRepository_CreateInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)
	event := OutboxEvent{
		ID:            "7d0a4d2b-8a0e-4c43-9d7f-1f4c0d7a0b11",
		RequestID:     "rid",
		AggregateType: "payroll",
		AggregateID:   "9a1f0e6c-1a47-4b45-8d89-2b2a1c3d4e5f",
		EventType:     "payroll_generated",
		Topic:         "payroll.lifecycle.v1",
		Payload:       []byte(`{"scope":"general"}`),
		Status:        OutboxStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(event.ID, event.RequestID, event.AggregateType, event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)
	assert.NoError(t, repo.WithTx(tx).Create(context.Background(), event))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateRejectsInvalid(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	err = NewOutboxRepository(db).Create(context.Background(), OutboxEvent{ID: "x", Topic: "t", Status: OutboxStatusPending})

	assert.EqualError(t, err, "outbox payload is required")
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
		AddRow("o-1", "rid", "settlement", "s-1", "settlement_exported", "payroll.settlement.exported.v1", []byte(`{}`), OutboxStatusFailed, 2, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(OutboxStatusPending, OutboxStatusFailed, 10).
		WillReturnRows(rows)

	events, err := NewOutboxRepository(db).ListPending(context.Background(), 10)

	assert.NoError(t, err)
	if assert.Len(t, events, 1) {
		assert.Equal(t, "rid", events[0].RequestID)
		assert.Equal(t, 2, events[0].RetryCount)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailedAndPurge(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewOutboxRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("o-1", OutboxStatusFailed, "timeout", MaxOutboxAttempts, OutboxStatusDead).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.MarkFailed(context.Background(), "o-1", "timeout"))

	cutoff := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM outbox_events")).
		WithArgs(OutboxStatusSent, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))
	n, err := repo.PurgeSent(context.Background(), cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}
