// Package sessiondb contains refresh session related CRUD functionality.
package sessiondb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/sessionbus"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for session database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (sessionbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new session into the database.
func (s *Store) Create(ctx context.Context, ses sessionbus.Session) error {
	const q = `
	INSERT INTO "public"."refresh_token"
		(token_id, user_id, expires_at, revoked, created_at)
	VALUES
		(:token_id, :user_id, :expires_at, :revoked, :created_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBSession(ses)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Revoke marks a session as revoked.
func (s *Store) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	data := struct {
		TokenID string `db:"token_id"`
	}{
		TokenID: tokenID.String(),
	}

	const q = `
	UPDATE
		"public"."refresh_token"
	SET
		revoked = true
	WHERE
		token_id = :token_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// RevokeAllForUser marks every session owned by the user as revoked.
func (s *Store) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	data := struct {
		UserID string `db:"user_id"`
	}{
		UserID: userID.String(),
	}

	const q = `
	UPDATE
		"public"."refresh_token"
	SET
		revoked = true
	WHERE
		user_id = :user_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified session from the database.
func (s *Store) QueryByID(ctx context.Context, tokenID uuid.UUID) (sessionbus.Session, error) {
	data := struct {
		TokenID string `db:"token_id"`
	}{
		TokenID: tokenID.String(),
	}

	const q = `
	SELECT
		token_id, user_id, expires_at, revoked, created_at
	FROM
		"public"."refresh_token"
	WHERE
		token_id = :token_id`

	var dbSes sessionDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbSes); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return sessionbus.Session{}, fmt.Errorf("db: %w", sessionbus.ErrNotFound)
		}
		return sessionbus.Session{}, fmt.Errorf("db: %w", err)
	}

	return toBusSession(dbSes), nil
}

// DeleteExpired removes sessions whose expiry has passed.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	data := struct {
		Now time.Time `db:"now"`
	}{
		Now: now,
	}

	const q = `
	DELETE FROM
		"public"."refresh_token"
	WHERE
		expires_at < :now
	RETURNING token_id`

	var deleted []sessionDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &deleted); err != nil {
		return 0, fmt.Errorf("namedqueryslice: %w", err)
	}

	return len(deleted), nil
}
