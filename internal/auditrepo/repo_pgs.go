// Package auditrepo manages repository layer of audit logs.
package auditrepo

import (
	"context"
	"database/sql"

	"github.com/securebank/ledger/internal/domain"
	"github.com/securebank/ledger/pkg/dbpkg"
	"github.com/securebank/ledger/pkg/errorspkg"

	"github.com/rs/zerolog"
)

// RepoPGS facilitates audit log repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns audit log RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    audit_logs (event_type, account_id, user_id, message)
VALUES
    ($1, $2, $3, $4)
RETURNING id, event_type, account_id, user_id, message, created_at
`

// Create appends the audit log entry and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.LogEventParams) (domain.AuditLog, error) {
	l := zerolog.Ctx(ctx)

	accountID := sql.NullString{String: arg.AccountID, Valid: arg.AccountID != ""}
	userID := sql.NullString{String: arg.UserID, Valid: arg.UserID != ""}

	row := r.db.QueryRowContext(ctx, createQuery, arg.EventType, accountID, userID, arg.Message)

	entry, err := scanAuditLog(row)
	if err != nil {
		l.Error().Err(err).Send()
		return entry, errorspkg.ErrInternal
	}

	return entry, nil
}

const listByAccountQuery = `
SELECT
	id, event_type, account_id, user_id, message, created_at
FROM audit_logs
WHERE account_id = $1
ORDER BY created_at DESC
`

// ListByAccount returns the account's audit log entries, most recent first.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID string) ([]domain.AuditLog, error) {
	return r.list(ctx, listByAccountQuery, accountID)
}

const listByUserQuery = `
SELECT
	id, event_type, account_id, user_id, message, created_at
FROM audit_logs
WHERE user_id = $1
ORDER BY created_at DESC
`

// ListByUser returns the user's audit log entries, most recent first.
func (r *RepoPGS) ListByUser(ctx context.Context, userID string) ([]domain.AuditLog, error) {
	return r.list(ctx, listByUserQuery, userID)
}

func (r *RepoPGS) list(ctx context.Context, query, key string) ([]domain.AuditLog, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, key)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.AuditLog{}

	for rows.Next() {
		var (
			entry     domain.AuditLog
			accountID sql.NullString
			userID    sql.NullString
		)

		if err := rows.Scan(&entry.ID, &entry.EventType, &accountID, &userID, &entry.Message, &entry.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		entry.AccountID = accountID.String
		entry.UserID = userID.String

		items = append(items, entry)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func scanAuditLog(row *sql.Row) (domain.AuditLog, error) {
	var (
		entry     domain.AuditLog
		accountID sql.NullString
		userID    sql.NullString
	)

	err := row.Scan(
		&entry.ID,
		&entry.EventType,
		&accountID,
		&userID,
		&entry.Message,
		&entry.CreatedAt,
	)

	entry.AccountID = accountID.String
	entry.UserID = userID.String

	return entry, err
}
