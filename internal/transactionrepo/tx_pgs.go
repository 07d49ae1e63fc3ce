package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/securebank/ledger/internal/accountrepo"
	"github.com/securebank/ledger/internal/domain"
	"github.com/securebank/ledger/pkg/errorspkg"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DepositTx credits the account and appends a DEPOSIT ledger entry within a
// single database transaction. The account row stays locked from the status
// check through commit.
func (r *RepoPGS) DepositTx(ctx context.Context, arg domain.DepositParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var result domain.Transaction

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer rollback(ctx, tx)

	accountRepo := accountrepo.NewRepoPGS(tx)
	entryRepo := NewTxRepoPGS(tx)

	account, err := accountRepo.GetForUpdate(ctx, arg.AccountID)
	if err != nil {
		return result, err
	}

	if _, err := checkActive(account, arg.Amount); err != nil {
		l.Info().Err(err).Str("account_id", account.ID).Send()
		return result, err
	}

	updated, err := accountRepo.AddBalance(ctx, arg.Amount, account.ID)
	if err != nil {
		return result, err
	}

	result, err = entryRepo.Create(ctx, domain.Transaction{
		AccountID:    account.ID,
		Type:         domain.TypeDeposit,
		Amount:       arg.Amount,
		BalanceAfter: updated.Balance,
		Description:  arg.Description,
	})
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

// WithdrawTx debits the account and appends a WITHDRAWAL ledger entry within a
// single database transaction. Sufficiency is checked under the row lock,
// strictly before the balance mutation.
func (r *RepoPGS) WithdrawTx(ctx context.Context, arg domain.WithdrawParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var result domain.Transaction

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer rollback(ctx, tx)

	accountRepo := accountrepo.NewRepoPGS(tx)
	entryRepo := NewTxRepoPGS(tx)

	account, err := accountRepo.GetForUpdate(ctx, arg.AccountID)
	if err != nil {
		return result, err
	}

	amount, err := checkActive(account, arg.Amount)
	if err != nil {
		l.Info().Err(err).Str("account_id", account.ID).Send()
		return result, err
	}

	if err := checkSufficient(account, amount); err != nil {
		l.Info().Err(err).Str("account_id", account.ID).Str("amount", arg.Amount).Send()
		return result, err
	}

	updated, err := accountRepo.AddBalance(ctx, "-"+arg.Amount, account.ID)
	if err != nil {
		return result, err
	}

	result, err = entryRepo.Create(ctx, domain.Transaction{
		AccountID:    account.ID,
		Type:         domain.TypeWithdrawal,
		Amount:       arg.Amount,
		BalanceAfter: updated.Balance,
		Description:  arg.Description,
	})
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

// TransferTx moves the amount between two accounts and appends both ledger
// legs within a single database transaction.
//
// To avoid deadlocks with a concurrent transfer over the same pair in the
// opposite direction, both rows are locked in canonical id order; the logical
// from/to roles are re-derived from the locked rows afterwards.
func (r *RepoPGS) TransferTx(ctx context.Context, arg domain.TransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	if arg.FromAccountID == arg.ToAccountID {
		return result, domain.ErrSameAccount
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer rollback(ctx, tx)

	accountRepo := accountrepo.NewRepoPGS(tx)
	entryRepo := NewTxRepoPGS(tx)

	firstID, secondID := arg.FromAccountID, arg.ToAccountID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := accountRepo.GetForUpdate(ctx, firstID)
	if err != nil {
		l.Info().Err(err).Str("account_id", firstID).Send()
		return result, err
	}

	second, err := accountRepo.GetForUpdate(ctx, secondID)
	if err != nil {
		l.Info().Err(err).Str("account_id", secondID).Send()
		return result, err
	}

	from, to := first, second
	if from.ID != arg.FromAccountID {
		from, to = second, first
	}

	amount, err := checkActive(from, arg.Amount)
	if err != nil {
		l.Info().Err(err).Str("account_id", from.ID).Send()
		return result, err
	}

	if _, err := checkActive(to, arg.Amount); err != nil {
		l.Info().Err(err).Str("account_id", to.ID).Send()
		return result, err
	}

	if err := checkSufficient(from, amount); err != nil {
		l.Info().Err(err).Str("account_id", from.ID).Str("amount", arg.Amount).Send()
		return result, err
	}

	result.FromAccount, err = accountRepo.AddBalance(ctx, "-"+arg.Amount, from.ID)
	if err != nil {
		return result, err
	}

	result.ToAccount, err = accountRepo.AddBalance(ctx, arg.Amount, to.ID)
	if err != nil {
		return result, err
	}

	debitDescription := arg.Description
	if debitDescription == "" {
		debitDescription = "Transfer to " + to.AccountNumber
	}

	result.Debit, err = entryRepo.Create(ctx, domain.Transaction{
		AccountID:      from.ID,
		CounterpartyID: to.ID,
		Type:           domain.TypeTransfer,
		Amount:         arg.Amount,
		BalanceAfter:   result.FromAccount.Balance,
		Description:    debitDescription,
	})
	if err != nil {
		return result, err
	}

	result.Credit, err = entryRepo.Create(ctx, domain.Transaction{
		AccountID:      to.ID,
		CounterpartyID: from.ID,
		Type:           domain.TypeTransfer,
		Amount:         arg.Amount,
		BalanceAfter:   result.ToAccount.Balance,
		Description:    "Transfer from " + from.AccountNumber,
	})
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

// checkActive rejects frozen accounts and re-validates amount positivity under
// the held lock.
func checkActive(account domain.Account, amount string) (decimal.Decimal, error) {
	if account.Status != domain.StatusActive {
		return decimal.Decimal{}, domain.ErrAccountFrozen
	}

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil || amountDecimal.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	return amountDecimal, nil
}

func checkSufficient(account domain.Account, amount decimal.Decimal) error {
	balance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		return errorspkg.ErrInternal
	}

	if balance.LessThan(amount) {
		return domain.ErrInsufficientBalance
	}

	return nil
}

// rollback is a no-op after a successful commit.
func rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		zerolog.Ctx(ctx).Error().Err(err).Send()
	}
}
