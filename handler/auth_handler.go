package handler

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/555cider/admin-server/common"
	"github.com/555cider/admin-server/config"
	"github.com/555cider/admin-server/logger"
	"github.com/555cider/admin-server/model"
	"github.com/555cider/admin-server/service"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// Login authenticates a username/password pair, sets both token cookies, and
// returns the access token in the body for header-based clients.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid request body", err)
	}
	if req.RedirectURL == "" {
		req.RedirectURL = "/dashboard"
	}

	logger.Log.WithField("username", req.Username).Info("Login request received")

	pair, appErr := h.service.Login(r.Context(), req, clientIP(r))
	if appErr != nil {
		return appErr
	}

	setTokenCookies(w, pair.AccessToken, pair.RefreshToken)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")

	writeJSON(w, http.StatusOK, model.LoginResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   config.AppConfig.Token.AccessExp,
		RedirectURL: req.RedirectURL,
	})
	return nil
}

// Refresh rotates the token pair. The refresh token is read from its cookie;
// there is no request body.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	cookie, err := r.Cookie(config.AppConfig.Cookie.RefreshTokenName)
	if err != nil || cookie.Value == "" {
		return common.Unauthorized("No refresh token provided")
	}

	pair, appErr := h.service.Refresh(r.Context(), cookie.Value, clientIP(r))
	if appErr != nil {
		return appErr
	}

	setTokenCookies(w, pair.AccessToken, pair.RefreshToken)
	w.Header().Set("Cache-Control", "no-store")

	writeJSON(w, http.StatusOK, model.LoginResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   config.AppConfig.Token.AccessExp,
	})
	return nil
}

// Register creates a new admin user and responds 201 with its id.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid request body", err)
	}

	logger.Log.WithField("username", req.Username).Info("Register request received")

	userID, appErr := h.service.Register(r.Context(), req, clientIP(r))
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusCreated, model.RegisterResponse{ID: userID})
	return nil
}

// Logout clears both token cookies. The tokens themselves stay valid until
// expiry; invalidation happens at the edge only.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	clearTokenCookies(w)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"redirect": "/",
	})
	return nil
}

// Me returns the authenticated user's profile, user type, and permissions.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		return common.Unauthorized("Not authenticated")
	}

	response, appErr := h.service.GetCurrentUser(r.Context(), userID)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, response)
	return nil
}
