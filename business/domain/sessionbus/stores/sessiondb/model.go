package sessiondb

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/manfix/business/domain/sessionbus"
)

type sessionDB struct {
	TokenID   uuid.UUID `db:"token_id"`
	UserID    uuid.UUID `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	Revoked   bool      `db:"revoked"`
	CreatedAt time.Time `db:"created_at"`
}

func toDBSession(ses sessionbus.Session) sessionDB {
	return sessionDB{
		TokenID:   ses.TokenID,
		UserID:    ses.UserID,
		ExpiresAt: ses.ExpiresAt.UTC(),
		Revoked:   ses.Revoked,
		CreatedAt: ses.CreatedAt.UTC(),
	}
}

func toBusSession(dbSes sessionDB) sessionbus.Session {
	return sessionbus.Session{
		TokenID:   dbSes.TokenID,
		UserID:    dbSes.UserID,
		ExpiresAt: dbSes.ExpiresAt.In(time.Local),
		Revoked:   dbSes.Revoked,
		CreatedAt: dbSes.CreatedAt.In(time.Local),
	}
}
