package domain

import "time"

// Audit event types emitted by the transaction service.
const (
	EventDepositCompleted    = "DEPOSIT_COMPLETED"
	EventWithdrawalCompleted = "WITHDRAWAL_COMPLETED"
	EventTransferCompleted   = "TRANSFER_COMPLETED"
	EventAccountFrozen       = "ACCOUNT_FROZEN"
	EventAccountUnfrozen     = "ACCOUNT_UNFROZEN"
)

// AuditLog records one system event for later inspection.
type AuditLog struct {
	ID        string    `json:"id"`
	EventType string    `json:"event_type"`
	AccountID string    `json:"account_id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// LogEventParams is the input data for an audit log entry.
type LogEventParams struct {
	EventType string `json:"event_type"`
	AccountID string `json:"account_id"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
}
