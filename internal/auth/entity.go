// AngelaMos | 2026
// entity.go

package auth

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use reset credential. A user has at
// most one live token: issuing a new one purges any earlier rows.
type PasswordResetToken struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
