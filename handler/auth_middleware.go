package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/555cider/admin-server/common"
	"github.com/555cider/admin-server/logger"
	"github.com/555cider/admin-server/service"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UserRoleKey contextKey = "userRole"
)

const unauthorizedPage = `<!DOCTYPE html>
<html>
<head><title>Unauthorized</title></head>
<body>
  <h1>Unauthorized Access</h1>
  <p>You need to be logged in to access this page.</p>
  <a href="/auth/login">Go to Login</a>
</body>
</html>`

// AuthMiddleware gates every protected route. Identity comes from the
// Authorization header or the access token cookie, in that order.
type AuthMiddleware struct {
	tokens     *service.TokenCodec
	cookieName string
}

func NewAuthMiddleware(tokens *service.TokenCodec, accessCookieName string) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, cookieName: accessCookieName}
}

// extractToken returns the bearer token from the Authorization header, or
// failing that, the access token cookie. Empty values count as absent.
func (m *AuthMiddleware) extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok && token != "" {
		return token
	}
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// isAPIRequest reports whether the client negotiated for JSON. Machine
// clients get a JSON 401; browser navigations get an HTML page.
func isAPIRequest(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (m *AuthMiddleware) rejectUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	if isAPIRequest(r) {
		common.Unauthorized(message).Send(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(unauthorizedPage))
}

// Auth is the mandatory variant: requests without a valid token are rejected
// with a 401, negotiated as JSON or HTML depending on the Accept header.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.extractToken(r)
		if token == "" {
			logger.Log.Warn("Missing Authorization header and access token cookie")
			m.rejectUnauthorized(w, r, "Missing or invalid Authorization header or access_token cookie. Please login again.")
			return
		}

		claims, err := m.tokens.Decode(token)
		if err != nil {
			logger.Log.WithError(err).Warn("Token validation failed")
			m.rejectUnauthorized(w, r, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attaches an identity when a valid token is present and passes
// the request through untouched otherwise. It never rejects.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := m.extractToken(r); token != "" {
			if claims, err := m.tokens.Decode(token); err == nil {
				ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
				ctx = context.WithValue(ctx, UserRoleKey, claims.Role)
				r = r.WithContext(ctx)
			} else {
				logger.Log.WithError(err).Debug("Token validation failed, continuing unauthenticated")
			}
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
