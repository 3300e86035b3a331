package router

import (
	"net/http"

	"github.com/555cider/admin-server/handler"

	"github.com/gorilla/mux"
)

// NewRouter assembles the route table. Optional auth runs at the top of the
// stack so any handler can read an identity when one is present; /auth/me
// additionally requires a valid token.
func NewRouter(
	authHandler *handler.AuthHandler,
	historyHandler *handler.HistoryHandler,
	authMiddleware *handler.AuthMiddleware,
) http.Handler {
	r := mux.NewRouter()
	r.Use(authMiddleware.OptionalAuth)

	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.Handle("/auth/login", handler.ErrorHandlingMiddleware(authHandler.Login)).Methods(http.MethodPost)
	r.Handle("/auth/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh)).Methods(http.MethodPost)
	r.Handle("/auth/register", handler.ErrorHandlingMiddleware(authHandler.Register)).Methods(http.MethodPost)
	r.Handle("/auth/logout", handler.ErrorHandlingMiddleware(authHandler.Logout)).Methods(http.MethodPost)

	protected := r.PathPrefix("/auth/me").Subrouter()
	protected.Use(authMiddleware.Auth)
	protected.Handle("", handler.ErrorHandlingMiddleware(authHandler.Me)).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Handle("/history", handler.ErrorHandlingMiddleware(historyHandler.List)).Methods(http.MethodGet)

	return r
}
