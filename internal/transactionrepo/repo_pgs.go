// Package transactionrepo manages repository layer of ledger transactions.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/securebank/ledger/internal/domain"
	"github.com/securebank/ledger/pkg/dbpkg"
	"github.com/securebank/ledger/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transaction RepoPGS bound to an open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transaction RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (account_id, counterparty_account_id, type, amount, balance_after, description)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING id, account_id, counterparty_account_id, type, amount, balance_after, description, created_at
`

// Create appends the ledger entry and then returns it with the assigned id and
// creation time. Rows are never updated or deleted afterwards.
func (r *RepoPGS) Create(ctx context.Context, arg domain.Transaction) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	counterparty := sql.NullString{String: arg.CounterpartyID, Valid: arg.CounterpartyID != ""}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		counterparty,
		arg.Type,
		arg.Amount,
		arg.BalanceAfter,
		arg.Description,
	)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_id_fkey", "transactions_counterparty_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrInvalidAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT
	id, account_id, counterparty_account_id, type, amount, balance_after, description, created_at
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listByAccountQuery = `
SELECT
	id, account_id, counterparty_account_id, type, amount, balance_after, description, created_at
FROM transactions
WHERE account_id = $1
ORDER BY created_at DESC
`

// ListByAccount returns the account's ledger entries, most recent first.
// No locks are taken; committed transfers are always visible with both legs.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByAccountQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var (
			t            domain.Transaction
			counterparty sql.NullString
		)

		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&counterparty,
			&t.Type,
			&t.Amount,
			&t.BalanceAfter,
			&t.Description,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		t.CounterpartyID = counterparty.String

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func scanTransaction(row *sql.Row) (domain.Transaction, error) {
	var (
		t            domain.Transaction
		counterparty sql.NullString
	)

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&counterparty,
		&t.Type,
		&t.Amount,
		&t.BalanceAfter,
		&t.Description,
		&t.CreatedAt,
	)

	t.CounterpartyID = counterparty.String

	return t, err
}
