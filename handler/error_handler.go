package handler

import (
	"net/http"

	"github.com/555cider/admin-server/common"
)

// ErrorHandlingMiddleware adapts handlers returning a typed error into
// http.HandlerFunc, centralizing the error response path.
func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}
