package events

import "time"

const SettlementExportedTopic = "payroll.settlement.exported.v1"

const SettlementExportedEventType = "settlement_exported"

type SettlementExportedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	SettlementID string    `json:"settlement_id"`
	BankID       string    `json:"bank_id"`
	FileName     string    `json:"file_name"`
	FilePath     string    `json:"file_path"`
	PayrollIDs   []string  `json:"payroll_ids"`
	OccurredAt   time.Time `json:"occurred_at"`
}
