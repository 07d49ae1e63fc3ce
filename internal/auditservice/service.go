// Package auditservice manages business logic layer of audit logs.
package auditservice

import (
	"context"

	"github.com/securebank/ledger/internal/domain"
)

// Repo provides data access layer interface needed by audit service layer.
type Repo interface {
	Create(ctx context.Context, arg domain.LogEventParams) (domain.AuditLog, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.AuditLog, error)
	ListByUser(ctx context.Context, userID string) ([]domain.AuditLog, error)
}

// Service facilitates audit service layer logic.
type Service struct {
	repo Repo
}

// New returns audit service struct to manage audit log business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// LogEvent appends an audit log entry.
func (s *Service) LogEvent(ctx context.Context, arg domain.LogEventParams) (domain.AuditLog, error) {
	return s.repo.Create(ctx, arg)
}

// ListByAccount returns the account's audit log entries, most recent first.
func (s *Service) ListByAccount(ctx context.Context, accountID string) ([]domain.AuditLog, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

// ListByUser returns the user's audit log entries, most recent first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.AuditLog, error) {
	return s.repo.ListByUser(ctx, userID)
}
