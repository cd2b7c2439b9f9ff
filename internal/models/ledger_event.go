package models

import "time"

const (
	EventLogin          = "LOGIN"
	EventLoginFailed    = "LOGIN_FAILED"
	EventLogout         = "LOGOUT"
	EventPaymentCreated = "PAYMENT_CREATED"
	EventExpenseCreated = "EXPENSE_CREATED"
	EventReportExported = "REPORT_EXPORTED"
)

// LedgerEvent is a single audit log entry.
type LedgerEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Actor       string    `json:"actor,omitempty"` // username, empty for anonymous attempts
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
