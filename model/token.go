// file: model/token.go

package model

import "time"

// RefreshToken is the durable per-user refresh token record. At most one row
// exists per user: login and refresh both upsert, replacing the prior token.
type RefreshToken struct {
	UserID    int64     `json:"user_id"`
	Token     string    `json:"-"` // The token is not exposed in JSON responses.
	ExpiresAt time.Time `json:"expires_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
