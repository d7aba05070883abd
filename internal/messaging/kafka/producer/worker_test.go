package producer

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/maikolguerrero/payroll-system-server/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failTopic string
	written   []kafkago.Message
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if m.Topic == f.failTopic {
			return errors.New("leader not available")
		}
		f.written = append(f.written, m)
	}
	return nil
}

type fakeOutbox struct {
	pending []kafka.OutboxEvent
	sent    []string
	failed  map[string]string
	purged  []time.Time
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error { return nil }

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.pending, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	f.failed[id] = reason
	return nil
}

func (f *fakeOutbox) PurgeSent(ctx context.Context, before time.Time) (int64, error) {
	f.purged = append(f.purged, before)
	return 3, nil
}

func TestRelayBatch(t *testing.T) {
	repo := &fakeOutbox{
		failed: map[string]string{},
		pending: []kafka.OutboxEvent{
			{ID: "o-1", RequestID: "rid", AggregateType: "payroll", AggregateID: "p-1", EventType: "payroll_generated", Topic: "payroll.lifecycle.v1", Payload: []byte(`{}`)},
			{ID: "o-2", AggregateType: "settlement", AggregateID: "s-1", EventType: "settlement_exported", Topic: "down", Payload: []byte(`{}`)},
		},
	}
	writer := &fakeWriter{failTopic: "down"}

	err := relayBatch(context.Background(), repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, []string{"o-1"}, repo.sent)
	assert.Equal(t, "leader not available", repo.failed["o-2"])
	if assert.Len(t, writer.written, 1) {
		msg := writer.written[0]
		assert.Equal(t, []byte("p-1"), msg.Key)
		assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("rid")})
		assert.Contains(t, msg.Headers, kafkago.Header{Key: "event_type", Value: []byte("payroll_generated")})
	}
}

func TestRelayBatch_Empty(t *testing.T) {
	repo := &fakeOutbox{failed: map[string]string{}}
	writer := &fakeWriter{}

	assert.NoError(t, relayBatch(context.Background(), repo, writer, zap.NewNop()))
	assert.Empty(t, writer.written)
	assert.Empty(t, repo.sent)
}

func TestRelay_RunPurgesAndStops(t *testing.T) {
	repo := &fakeOutbox{failed: map[string]string{}}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Relay{
			Repo:          repo,
			Writer:        &fakeWriter{},
			Logger:        zap.NewNop(),
			PollInterval:  time.Hour,
			PurgeInterval: 10 * time.Millisecond,
			Retention:     24 * time.Hour,
		}.Run(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()
	<-done

	assert.NotEmpty(t, repo.purged)
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), repo.purged[0], time.Second)
}
