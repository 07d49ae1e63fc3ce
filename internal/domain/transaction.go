package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidAmount indicates an amount that is not a positive decimal.
	ErrInvalidAmount = errors.New("amount must be a positive decimal")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSameAccount indicates a transfer where both sides are the same account.
	ErrSameAccount = errors.New("cannot transfer to the same account")
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionType labels the ledger entry kind.
type TransactionType string

// Supported transaction types.
const (
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
	TypeTransfer   TransactionType = "TRANSFER"
)

// Transaction is one immutable ledger entry from the perspective of AccountID.
// CounterpartyID is set only for transfer legs. BalanceAfter snapshots the
// account balance as committed in the same database transaction.
type Transaction struct {
	ID             string          `json:"id"`
	AccountID      string          `json:"account_id"`
	CounterpartyID string          `json:"counterparty_account_id,omitempty"`
	Type           TransactionType `json:"type"`
	Amount         string          `json:"amount"`
	BalanceAfter   string          `json:"balance_after"`
	Description    string          `json:"description"`
	CreatedAt      time.Time       `json:"created_at"`
}

// DepositParams is the input data for a deposit.
type DepositParams struct {
	AccountID   string `json:"account_id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// WithdrawParams is the input data for a withdrawal.
type WithdrawParams struct {
	AccountID   string `json:"account_id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// TransferParams is the input data for a transfer between two accounts.
type TransferParams struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
}

// TransferTxResult is the result of the transfer transaction.
// Debit is the primary result returned to the caller.
type TransferTxResult struct {
	Debit       Transaction `json:"debit"`
	Credit      Transaction `json:"credit"`
	FromAccount Account     `json:"from_account"`
	ToAccount   Account     `json:"to_account"`
}
