package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken is an opaque bearer token issued to an operator at login.
type AuthToken struct {
	BaseSimple
	OperatorID uuid.UUID  `db:"operator_id"`
	Token      uuid.UUID  `db:"token"`
	UserAgent  *string    `db:"user_agent"`
	IPAddress  *string    `db:"ip_address"`
	ExpiresAt  time.Time  `db:"expires_at"`
	RevokedAt  *time.Time `db:"revoked_at"`
}
