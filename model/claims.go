package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims is the signed identity assertion carried by both access and
// refresh tokens. The two differ only in the TTL chosen at issuance.
type AppClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
