package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/maikolguerrero/payroll-system-server/internal/bootstrap"
	"github.com/maikolguerrero/payroll-system-server/internal/events"
	"github.com/maikolguerrero/payroll-system-server/internal/messaging/kafka/consumer"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/storage"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func newReader(broker, topic, group string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        group,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}

func RunConsumer(cfg Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	if cfg.SettlementArchiveBucket == "" {
		return fmt.Errorf("SETTLEMENT_ARCHIVE_BUCKET is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exports, err := storage.NewLocalStorage(cfg.SettlementExportDir)
	if err != nil {
		return err
	}
	archive, err := storage.NewS3Storage(ctx, cfg.SettlementArchiveBucket, cfg.SettlementArchivePrefix)
	if err != nil {
		return err
	}

	settlementReader := newReader(cfg.KafkaBroker, events.SettlementExportedTopic, "payroll-settlement-archive")
	defer settlementReader.Close()
	lifecycleReader := newReader(cfg.KafkaBroker, events.PayrollLifecycleTopic, "payroll-lifecycle-audit")
	defer lifecycleReader.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.Run(ctx, settlementReader, "settlement_archive", consumer.ArchiveSettlement(exports, archive), logger)
	}()
	go func() {
		defer wg.Done()
		consumer.Run(ctx, lifecycleReader, "payroll_audit", consumer.AuditPayrollLifecycle(bootstrap.NewStdoutAuditLogger(logger)), logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}
