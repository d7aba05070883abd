package consumer

import (
	"context"
	"errors"

	"github.com/maikolguerrero/payroll-system-server/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ErrSkip marks a message that can never succeed (bad payload, missing
// source). It is committed so the partition keeps moving.
var ErrSkip = errors.New("skip message")

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type HandlerFunc func(ctx context.Context, msg kafkago.Message) error

// Run fetches messages until ctx is done. A message is committed after its
// handler succeeds or returns ErrSkip; other failures leave it uncommitted so
// it is redelivered after a rebalance or restart.
func Run(ctx context.Context, reader MessageReader, name string, handle HandlerFunc, logger *zap.Logger) {
	log := logger.Named("kafka.consumer." + name)
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		msgCtx := contextutil.WithRequestID(ctx, header(msg, "request_id"))
		msgLog := log.With(
			zap.String("request_id", header(msg, "request_id")),
			zap.String("event_type", header(msg, "event_type")),
			zap.Int64("offset", msg.Offset),
		)
		msgCtx = contextutil.WithLogger(msgCtx, msgLog)

		if err := handle(msgCtx, msg); err != nil {
			if !errors.Is(err, ErrSkip) {
				msgLog.Error("handle message failed", zap.Error(err))
				continue
			}
			msgLog.Warn("message skipped", zap.Error(err))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			msgLog.Error("commit message failed", zap.Error(err))
		}
	}
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
