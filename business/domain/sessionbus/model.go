package sessionbus

import (
	"time"

	"github.com/google/uuid"
)

// Session represents a refresh session bound to a refresh token jti.
type Session struct {
	TokenID   uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// NewSession contains the information needed to register a session.
type NewSession struct {
	TokenID   uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
}
