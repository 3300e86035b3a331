package handler

import (
	"net/http"
	"strconv"

	"github.com/555cider/admin-server/common"
	"github.com/555cider/admin-server/service"
)

const defaultHistoryLimit = 50

type HistoryHandler struct {
	service *service.HistoryService
}

func NewHistoryHandler(service *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// List returns recent audit entries. The route sits behind optional auth:
// anonymous callers see the global feed, authenticated callers see their own.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) *common.AppError {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return common.BadRequest("Invalid limit parameter")
		}
		limit = parsed
	}

	if userID, ok := UserIDFromContext(r.Context()); ok {
		entries, err := h.service.GetRecentHistoryForUser(userID, limit)
		if err != nil {
			return common.Internal("Failed to list history", err)
		}
		writeJSON(w, http.StatusOK, entries)
		return nil
	}

	entries, err := h.service.GetRecentHistory(limit)
	if err != nil {
		return common.Internal("Failed to list history", err)
	}
	writeJSON(w, http.StatusOK, entries)
	return nil
}
