package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/maikolguerrero/payroll-system-server/internal/bootstrap"
	"github.com/maikolguerrero/payroll-system-server/internal/events"

	kafkago "github.com/segmentio/kafka-go"
)

// AuditPayrollLifecycle records every payroll lifecycle event in the audit log.
func AuditPayrollLifecycle(audit bootstrap.AuditLogger) HandlerFunc {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.PayrollGeneratedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("%w: decode payroll lifecycle event: %v", ErrSkip, err)
		}

		audit.Log(ctx, bootstrap.AuditLog{
			Action:  "PAYROLL_GENERATED",
			Message: fmt.Sprintf("%d payrolls generated for %s scope", len(event.PayrollIDs), event.Scope),
			Meta: map[string]any{
				"scope":        event.Scope,
				"scope_id":     event.ScopeID,
				"period":       event.Period,
				"start_date":   event.StartDate,
				"end_date":     event.EndDate,
				"payroll_ids":  event.PayrollIDs,
				"failed_count": event.FailedCount,
			},
		})
		return nil
	}
}
