package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/555cider/admin-server/service"

	"github.com/stretchr/testify/assert"
)

func newTestMiddleware() (*AuthMiddleware, *service.TokenCodec) {
	codec := service.NewTokenCodec("test-secret", 3600, 86400)
	return NewAuthMiddleware(codec, "access_token"), codec
}

// identityEcho records the user id the middleware attached, if any.
func identityEcho(captured *int64, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if userID, ok := UserIDFromContext(r.Context()); ok {
			*captured = userID
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_HeaderTakesPrecedenceOverCookie(t *testing.T) {
	m, codec := newTestMiddleware()

	headerToken, err := codec.IssueAccessToken(1, "header-user", "admin")
	assert.NoError(t, err)
	cookieToken, err := codec.IssueAccessToken(2, "cookie-user", "admin")
	assert.NoError(t, err)

	var captured int64
	var called bool
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+headerToken)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: cookieToken})
	rr := httptest.NewRecorder()

	m.Auth(identityEcho(&captured, &called)).ServeHTTP(rr, req)

	assert.True(t, called)
	assert.Equal(t, int64(1), captured)
}

func TestAuthMiddleware_FallsBackToCookie(t *testing.T) {
	m, codec := newTestMiddleware()

	cookieToken, err := codec.IssueAccessToken(2, "cookie-user", "admin")
	assert.NoError(t, err)

	var captured int64
	var called bool
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: cookieToken})
	rr := httptest.NewRecorder()

	m.Auth(identityEcho(&captured, &called)).ServeHTTP(rr, req)

	assert.True(t, called)
	assert.Equal(t, int64(2), captured)
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	m, _ := newTestMiddleware()

	t.Run("JSON clients get a JSON 401", func(t *testing.T) {
		var called bool
		var captured int64
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Accept", "application/json")
		rr := httptest.NewRecorder()

		m.Auth(identityEcho(&captured, &called)).ServeHTTP(rr, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	})

	t.Run("browser clients get an HTML 401 page", func(t *testing.T) {
		var called bool
		var captured int64
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		rr := httptest.NewRecorder()

		m.Auth(identityEcho(&captured, &called)).ServeHTTP(rr, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rr.Body.String(), "/auth/login")
	})
}

func TestAuthMiddleware_RejectsInvalidToken(t *testing.T) {
	m, _ := newTestMiddleware()
	other := service.NewTokenCodec("different-secret", 3600, 86400)
	forged, err := other.IssueAccessToken(1, "mallory", "admin")
	assert.NoError(t, err)

	for _, token := range []string{forged, "garbage"} {
		var called bool
		var captured int64
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		rr := httptest.NewRecorder()

		m.Auth(identityEcho(&captured, &called)).ServeHTTP(rr, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	}
}

func TestAuthMiddleware_EmptyBearerTokenCountsAsAbsent(t *testing.T) {
	m, _ := newTestMiddleware()

	var called bool
	var captured int64
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer ")
	req.Header.Set("Accept", "application/json")
	rr := httptest.NewRecorder()

	m.Auth(identityEcho(&captured, &called)).ServeHTTP(rr, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestOptionalAuth_NeverRejects(t *testing.T) {
	m, codec := newTestMiddleware()

	validToken, err := codec.IssueAccessToken(7, "alice", "admin")
	assert.NoError(t, err)

	cases := []struct {
		name       string
		authHeader string
		wantUserID int64
	}{
		{name: "no token", authHeader: "", wantUserID: 0},
		{name: "invalid token", authHeader: "Bearer garbage", wantUserID: 0},
		{name: "valid token", authHeader: "Bearer " + validToken, wantUserID: 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var captured int64
			var called bool
			req := httptest.NewRequest("GET", "/public", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rr := httptest.NewRecorder()

			m.OptionalAuth(identityEcho(&captured, &called)).ServeHTTP(rr, req)

			assert.True(t, called)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tc.wantUserID, captured)
		})
	}
}

func TestIsAPIRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.False(t, isAPIRequest(req))

	req.Header.Set("Accept", "text/html")
	assert.False(t, isAPIRequest(req))

	req.Header.Set("Accept", "application/json, text/plain")
	assert.True(t, isAPIRequest(req))

	req.Header.Set("Accept", strings.ToLower("application/json"))
	assert.True(t, isAPIRequest(req))
}
