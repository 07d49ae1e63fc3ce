// Package transactionservice manages business logic layer of money movement.
package transactionservice

import (
	"context"

	"github.com/securebank/ledger/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	DepositTx(ctx context.Context, arg domain.DepositParams) (domain.Transaction, error)
	WithdrawTx(ctx context.Context, arg domain.WithdrawParams) (domain.Transaction, error)
	TransferTx(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// AccountService provides the account reads needed by the history path.
type AccountService interface {
	Get(ctx context.Context, id string) (domain.Account, error)
}

// Auditor receives completion events. It is best-effort: audit failures never
// fail a committed money movement.
type Auditor interface {
	LogEvent(ctx context.Context, arg domain.LogEventParams) (domain.AuditLog, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
	auditor        Auditor
}

// New returns transaction service struct to manage money movement business logic.
func New(tr Repo, as AccountService, auditor Auditor) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
		auditor:        auditor,
	}
}

// validAmount requires a parseable, strictly positive amount with at most two
// decimal digits. The repository re-checks positivity under the row lock.
func validAmount(ctx context.Context, amount string) error {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) || amountDecimal.Exponent() < -2 {
		l.Info().Str("amount", amount).Msg("rejected amount")
		return domain.ErrInvalidAmount
	}

	return nil
}

// Deposit credits the account and returns the appended ledger entry.
func (s *Service) Deposit(ctx context.Context, arg domain.DepositParams) (domain.Transaction, error) {
	if err := validAmount(ctx, arg.Amount); err != nil {
		return domain.Transaction{}, err
	}

	if arg.Description == "" {
		arg.Description = "Deposit"
	}

	result, err := s.repo.DepositTx(ctx, arg)
	if err != nil {
		return result, err
	}

	s.logEvent(ctx, domain.EventDepositCompleted, result)

	return result, nil
}

// Withdraw debits the account and returns the appended ledger entry.
func (s *Service) Withdraw(ctx context.Context, arg domain.WithdrawParams) (domain.Transaction, error) {
	if err := validAmount(ctx, arg.Amount); err != nil {
		return domain.Transaction{}, err
	}

	if arg.Description == "" {
		arg.Description = "Withdrawal"
	}

	result, err := s.repo.WithdrawTx(ctx, arg)
	if err != nil {
		return result, err
	}

	s.logEvent(ctx, domain.EventWithdrawalCompleted, result)

	return result, nil
}

// Transfer moves the amount between two accounts and returns the transfer
// result with the debit leg as the primary entry.
func (s *Service) Transfer(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error) {
	if arg.FromAccountID == arg.ToAccountID {
		return domain.TransferTxResult{}, domain.ErrSameAccount
	}

	if err := validAmount(ctx, arg.Amount); err != nil {
		return domain.TransferTxResult{}, err
	}

	result, err := s.repo.TransferTx(ctx, arg)
	if err != nil {
		return result, err
	}

	s.logEvent(ctx, domain.EventTransferCompleted, result.Debit)

	return result, nil
}

// History returns the account's ledger entries, most recent first.
func (s *Service) History(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	if _, err := s.accountService.Get(ctx, accountID); err != nil {
		return nil, err
	}

	return s.repo.ListByAccount(ctx, accountID)
}

func (s *Service) logEvent(ctx context.Context, eventType string, txn domain.Transaction) {
	_, err := s.auditor.LogEvent(ctx, domain.LogEventParams{
		EventType: eventType,
		AccountID: txn.AccountID,
		Message:   txn.Description,
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("event_type", eventType).Msg("audit log failed")
	}
}
