// Package sessionbus provides business access to refresh sessions. A session
// is created at login, rotated on refresh and revoked on logout.
package sessionbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/sdk/sqldb"
	"github.com/jcpaschoal/manfix/foundation/otel"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrRevoked  = errors.New("session revoked")
	ErrExpired  = errors.New("session expired")
)

// Storer defines the behavior required to persist sessions.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, ses Session) error
	Revoke(ctx context.Context, tokenID uuid.UUID) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	QueryByID(ctx context.Context, tokenID uuid.UUID) (Session, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// Core manages the set of APIs for session access.
type Core struct {
	storer Storer
}

// NewCore constructs a core for session api access.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer), nil
}

// Create registers a new refresh session for the user.
func (c *Core) Create(ctx context.Context, ns NewSession) (Session, error) {
	ctx, span := otel.AddSpan(ctx, "business.sessionbus.create")
	defer span.End()

	ses := Session{
		TokenID:   ns.TokenID,
		UserID:    ns.UserID,
		ExpiresAt: ns.ExpiresAt,
		Revoked:   false,
		CreatedAt: time.Now(),
	}

	if err := c.storer.Create(ctx, ses); err != nil {
		return Session{}, fmt.Errorf("create: %w", err)
	}

	return ses, nil
}

// Validate checks the session identified by the refresh token id is still
// usable. Callers rotate by revoking the old session and creating a new one.
func (c *Core) Validate(ctx context.Context, tokenID uuid.UUID) (Session, error) {
	ctx, span := otel.AddSpan(ctx, "business.sessionbus.validate")
	defer span.End()

	ses, err := c.storer.QueryByID(ctx, tokenID)
	if err != nil {
		return Session{}, fmt.Errorf("querybyid: tokenID[%s]: %w", tokenID, err)
	}

	if ses.Revoked {
		return Session{}, ErrRevoked
	}

	if time.Now().After(ses.ExpiresAt) {
		return Session{}, ErrExpired
	}

	return ses, nil
}

// Revoke marks the session as no longer usable.
func (c *Core) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.sessionbus.revoke")
	defer span.End()

	if err := c.storer.Revoke(ctx, tokenID); err != nil {
		return fmt.Errorf("revoke: tokenID[%s]: %w", tokenID, err)
	}

	return nil
}

// RevokeAllForUser invalidates every outstanding session owned by the user.
func (c *Core) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.sessionbus.revokeallforuser")
	defer span.End()

	if err := c.storer.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("revokeallforuser: userID[%s]: %w", userID, err)
	}

	return nil
}

// DeleteExpired removes sessions whose expiry has passed. Intended for the
// admin tooling, not the request path.
func (c *Core) DeleteExpired(ctx context.Context) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.sessionbus.deleteexpired")
	defer span.End()

	n, err := c.storer.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("deleteexpired: %w", err)
	}

	return n, nil
}
