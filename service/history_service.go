// file: service/history_service.go

package service

import (
	"database/sql"
	"encoding/json"

	"github.com/555cider/admin-server/logger"
	"github.com/555cider/admin-server/model"
	"github.com/555cider/admin-server/repository"
)

// HistoryService records the audit trail. Write helpers are best-effort:
// callers on the authentication path must never fail because an audit write
// did, so failures are logged here and swallowed.
type HistoryService struct {
	historyRepo repository.IHistoryRepository
}

func NewHistoryService(historyRepo repository.IHistoryRepository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// CreateLog writes one audit entry and returns any storage error.
func (s *HistoryService) CreateLog(userID *int64, action string, entityID *int64, details map[string]interface{}, ipAddress, userAgent string) error {
	entry := &model.History{Action: action}
	if userID != nil {
		entry.UserID = sql.NullInt64{Int64: *userID, Valid: true}
	}
	if entityID != nil {
		entry.EntityID = sql.NullInt64{Int64: *entityID, Valid: true}
	}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = sql.NullString{String: string(raw), Valid: true}
		}
	}
	if ipAddress != "" {
		entry.IPAddress = sql.NullString{String: ipAddress, Valid: true}
	}
	if userAgent != "" {
		entry.UserAgent = sql.NullString{String: userAgent, Valid: true}
	}
	return s.historyRepo.Create(entry)
}

// LogLoginSuccess records a successful login. Best-effort.
func (s *HistoryService) LogLoginSuccess(userID int64, username, ipAddress string) {
	err := s.CreateLog(&userID, "user_login", nil, map[string]interface{}{
		"event":    "login_success",
		"username": username,
	}, ipAddress, "")
	if err != nil {
		logger.Log.WithError(err).Error("Failed to log successful login")
	}
}

// LogLoginFailed records a failed login attempt with its reason. Best-effort.
func (s *HistoryService) LogLoginFailed(username, reason, ipAddress string) {
	err := s.CreateLog(nil, "login_failed", nil, map[string]interface{}{
		"username": username,
		"reason":   reason,
	}, ipAddress, "")
	if err != nil {
		logger.Log.WithError(err).Error("Failed to log failed login attempt")
	}
}

// LogUserCreated records a registration. Best-effort.
func (s *HistoryService) LogUserCreated(userID int64, username, ipAddress string) {
	err := s.CreateLog(&userID, "user_created", &userID, map[string]interface{}{
		"username": username,
	}, ipAddress, "")
	if err != nil {
		logger.Log.WithError(err).Error("Failed to log user creation")
	}
}

// LogTokenRefresh records a token rotation. Best-effort.
func (s *HistoryService) LogTokenRefresh(userID int64, ipAddress string) {
	err := s.CreateLog(&userID, "token_refresh", nil, map[string]interface{}{
		"event": "token_refresh",
	}, ipAddress, "")
	if err != nil {
		logger.Log.WithError(err).Error("Failed to log token refresh")
	}
}

// GetRecentHistory returns the newest audit entries as response DTOs.
func (s *HistoryService) GetRecentHistory(limit int) ([]model.HistoryResponse, error) {
	entries, err := s.historyRepo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	return toResponses(entries), nil
}

// GetRecentHistoryForUser returns the newest audit entries for one user.
func (s *HistoryService) GetRecentHistoryForUser(userID int64, limit int) ([]model.HistoryResponse, error) {
	entries, err := s.historyRepo.ListRecentByUser(userID, limit)
	if err != nil {
		return nil, err
	}
	return toResponses(entries), nil
}

func toResponses(entries []model.History) []model.HistoryResponse {
	responses := make([]model.HistoryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, entry.ToResponse())
	}
	return responses
}
