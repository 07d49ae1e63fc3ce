// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/securebank/ledger/internal/domain"
	"github.com/securebank/ledger/pkg/randompkg"
	"github.com/rs/zerolog"
)

// Account numbers are random; collisions are retried a few times before
// giving up.
const maxNumberAttempts = 5

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, userID, accountNumber string) (domain.Account, error)
	Get(ctx context.Context, id string) (domain.Account, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Account, error)
	SetStatus(ctx context.Context, id string, status domain.AccountStatus) (domain.Account, error)
}

// Auditor receives account administration events.
type Auditor interface {
	LogEvent(ctx context.Context, arg domain.LogEventParams) (domain.AuditLog, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo    Repo
	auditor Auditor
}

// New returns account service struct to manage account business logic.
func New(ar Repo, auditor Auditor) *Service {
	return &Service{repo: ar, auditor: auditor}
}

// Create provisions an account for the given user with a generated account
// number, zero balance and ACTIVE status.
func (s *Service) Create(ctx context.Context, userID string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var (
		account domain.Account
		err     error
	)

	for i := 0; i < maxNumberAttempts; i++ {
		account, err = s.repo.Create(ctx, userID, randompkg.AccountNumber())
		if err != domain.ErrAccountNumberExists {
			break
		}

		l.Warn().Str("user_id", userID).Msg("account number collision, retrying")
	}

	if err != nil {
		return account, err
	}

	l.Info().Str("account_id", account.ID).Str("account_number", account.AccountNumber).Msg("account created")

	return account, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id string) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// ListByUser returns accounts that are owned by the given user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Freeze blocks all balance-changing operations on the account.
func (s *Service) Freeze(ctx context.Context, id string) (domain.Account, error) {
	account, err := s.repo.SetStatus(ctx, id, domain.StatusFrozen)
	if err != nil {
		return account, err
	}

	s.logEvent(ctx, domain.EventAccountFrozen, account)

	return account, nil
}

// Unfreeze reactivates a frozen account. Unfreezing an account that is not
// frozen is an error.
func (s *Service) Unfreeze(ctx context.Context, id string) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	if account.Status != domain.StatusFrozen {
		return domain.Account{}, domain.ErrAccountNotFrozen
	}

	account, err = s.repo.SetStatus(ctx, id, domain.StatusActive)
	if err != nil {
		return account, err
	}

	s.logEvent(ctx, domain.EventAccountUnfrozen, account)

	return account, nil
}

func (s *Service) logEvent(ctx context.Context, eventType string, account domain.Account) {
	_, err := s.auditor.LogEvent(ctx, domain.LogEventParams{
		EventType: eventType,
		AccountID: account.ID,
		UserID:    account.UserID,
		Message:   "account " + account.AccountNumber + " status " + string(account.Status),
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("event_type", eventType).Msg("audit log failed")
	}
}
