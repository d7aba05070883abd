package events

import "time"

const PayrollLifecycleTopic = "payroll.lifecycle.v1"

const PayrollGeneratedEventType = "payroll_generated"

type PayrollGeneratedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	Scope       string    `json:"scope"`
	ScopeID     string    `json:"scope_id,omitempty"`
	PayrollIDs  []string  `json:"payroll_ids"`
	Period      string    `json:"period"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	FailedCount int       `json:"failed_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}
