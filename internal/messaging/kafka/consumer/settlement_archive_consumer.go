package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/maikolguerrero/payroll-system-server/internal/events"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/contextutil"
	"github.com/maikolguerrero/payroll-system-server/internal/shared/storage"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ArchiveSettlement copies each exported settlement file from the export
// directory to the archive storage (S3 in production). Re-archiving a file
// overwrites the same object.
func ArchiveSettlement(source, archive storage.FileStorage) HandlerFunc {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.SettlementExportedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("%w: decode settlement_exported: %v", ErrSkip, err)
		}
		if event.FileName == "" {
			return fmt.Errorf("%w: settlement %s has no file name", ErrSkip, event.SettlementID)
		}

		rc, err := source.Open(ctx, event.FileName)
		if errors.Is(err, storage.ErrFileNotFound) {
			return fmt.Errorf("%w: settlement file %s is gone", ErrSkip, event.FileName)
		}
		if err != nil {
			return err
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return err
		}

		location, err := archive.Save(ctx, event.FileName, content)
		if err != nil {
			return err
		}

		contextutil.GetLogger(ctx, zap.L()).Info("settlement file archived",
			zap.String("settlement_id", event.SettlementID),
			zap.String("file_name", event.FileName),
			zap.String("location", location),
			zap.Int("payroll_count", len(event.PayrollIDs)),
		)
		return nil
	}
}
