package producer

import (
	"context"
	"time"

	"github.com/maikolguerrero/payroll-system-server/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	batchSize = 50

	defaultPollInterval  = 3 * time.Second
	defaultPurgeInterval = time.Hour
	defaultRetention     = 7 * 24 * time.Hour
)

// Relay moves outbox rows to Kafka and prunes rows already delivered.
type Relay struct {
	Repo          kafka.OutboxRepository
	Writer        MessageWriter
	Logger        *zap.Logger
	PollInterval  time.Duration
	PurgeInterval time.Duration
	Retention     time.Duration
}

// Run blocks until ctx is done.
func (r Relay) Run(ctx context.Context) {
	if r.PollInterval <= 0 {
		r.PollInterval = defaultPollInterval
	}
	if r.PurgeInterval <= 0 {
		r.PurgeInterval = defaultPurgeInterval
	}
	if r.Retention <= 0 {
		r.Retention = defaultRetention
	}
	if r.Logger == nil {
		r.Logger = zap.L()
	}
	log := r.Logger.Named("kafka.producer.relay")

	poll := time.NewTicker(r.PollInterval)
	defer poll.Stop()
	purge := time.NewTicker(r.PurgeInterval)
	defer purge.Stop()

	log.Info("outbox relay started",
		zap.Duration("poll_interval", r.PollInterval),
		zap.Duration("retention", r.Retention),
	)

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox relay stopped")
			return
		case <-poll.C:
			if err := relayBatch(ctx, r.Repo, r.Writer, log); err != nil {
				log.Error("relay outbox batch failed", zap.Error(err))
			}
		case now := <-purge.C:
			n, err := r.Repo.PurgeSent(ctx, now.Add(-r.Retention))
			if err != nil {
				log.Warn("purge sent outbox rows failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("purged sent outbox rows", zap.Int64("count", n))
			}
		}
	}
}

// relayBatch publishes one batch. A failed row is marked for retry and the
// rest of the batch still goes out.
func relayBatch(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	log *zap.Logger,
) error {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil || len(events) == 0 {
		return err
	}

	var sent, failed int
	for _, event := range events {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		}

		if pubErr := publishEvent(ctx, writer, event); pubErr != nil {
			failed++
			log.Error("publish outbox event failed", append(fields, zap.Int("attempt", event.RetryCount+1), zap.Error(pubErr))...)
			if err := repo.MarkFailed(ctx, event.ID, pubErr.Error()); err != nil {
				log.Error("record outbox failure failed", append(fields, zap.Error(err))...)
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// Row will be relayed again; consumers tolerate duplicates.
			log.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}
		sent++
		log.Debug("outbox event sent", fields...)
	}

	log.Info("outbox batch relayed", zap.Int("sent", sent), zap.Int("failed", failed))
	return nil
}
