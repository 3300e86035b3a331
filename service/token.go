// file: service/token.go

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/555cider/admin-server/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers signature mismatch, malformed structure, and expiry.
// Callers must not distinguish between these causes.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenCodec signs and verifies identity assertions with a single symmetric
// secret. Access and refresh tokens share the same structure; they differ
// only in the TTL selected at issuance.
type TokenCodec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenCodec creates a codec from the signing secret and the two
// configured lifetimes, given in seconds.
func NewTokenCodec(secret string, accessExp, refreshExp int64) *TokenCodec {
	return &TokenCodec{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessExp) * time.Second,
		refreshTTL: time.Duration(refreshExp) * time.Second,
	}
}

// Issue builds and signs a token for the given identity with exp = now + ttl.
// A unique jti is included so consecutive issuances within the same second
// still produce distinct tokens.
func (c *TokenCodec) Issue(userID int64, username, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &model.AppClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, nil
}

// IssueAccessToken issues a short-lived token for API and page access.
func (c *TokenCodec) IssueAccessToken(userID int64, username, role string) (string, error) {
	return c.Issue(userID, username, role, c.accessTTL)
}

// IssueRefreshToken issues a long-lived token exchanged for a new pair.
func (c *TokenCodec) IssueRefreshToken(userID int64, username, role string) (string, error) {
	return c.Issue(userID, username, role, c.refreshTTL)
}

// Decode verifies the signature and structural validity of a token and
// returns its claims. Expiry is checked as part of validation; an expired
// token fails the same way a forged one does.
func (c *TokenCodec) Decode(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// AccessTTL reports the configured access token lifetime.
func (c *TokenCodec) AccessTTL() time.Duration {
	return c.accessTTL
}

// RefreshTTL reports the configured refresh token lifetime.
func (c *TokenCodec) RefreshTTL() time.Duration {
	return c.refreshTTL
}
