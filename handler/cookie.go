package handler

import (
	"net/http"

	"github.com/555cider/admin-server/config"
)

func buildTokenCookie(name, value string, maxAge int64) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   config.AppConfig.Cookie.Domain,
		MaxAge:   int(maxAge),
		HttpOnly: true,
		Secure:   config.AppConfig.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// setTokenCookies attaches the access and refresh token cookies, each with a
// max-age matching its token's lifetime.
func setTokenCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	cfg := config.AppConfig.Cookie
	http.SetCookie(w, buildTokenCookie(cfg.AccessTokenName, accessToken, cfg.AccessTokenMaxAge))
	http.SetCookie(w, buildTokenCookie(cfg.RefreshTokenName, refreshToken, cfg.RefreshTokenMaxAge))
}

// clearTokenCookies expires both token cookies immediately.
func clearTokenCookies(w http.ResponseWriter) {
	cfg := config.AppConfig.Cookie
	access := buildTokenCookie(cfg.AccessTokenName, "", 0)
	access.MaxAge = -1
	refresh := buildTokenCookie(cfg.RefreshTokenName, "", 0)
	refresh.MaxAge = -1
	http.SetCookie(w, access)
	http.SetCookie(w, refresh)
}
