package repository

import (
	"database/sql"

	"github.com/555cider/admin-server/logger"
	"github.com/555cider/admin-server/model"
)

// IHistoryRepository defines the contract for audit trail database operations.
type IHistoryRepository interface {
	Create(entry *model.History) error
	ListRecent(limit int) ([]model.History, error)
	ListRecentByUser(userID int64, limit int) ([]model.History, error)
}

// HistoryRepository implements IHistoryRepository.
type HistoryRepository struct {
	DB *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

// Create inserts a new audit entry.
func (r *HistoryRepository) Create(entry *model.History) error {
	query := `INSERT INTO history (user_id, action, entity_id, details, ip_address, user_agent)
	          VALUES (?, ?, ?, ?, ?, ?)
	          RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		entry.UserID, entry.Action, entry.EntityID,
		entry.Details, entry.IPAddress, entry.UserAgent,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		logger.Log.WithError(err).WithField("action", entry.Action).Error("Failed to execute create history query")
		return err
	}
	return nil
}

// ListRecent returns the newest audit entries, newest first.
func (r *HistoryRepository) ListRecent(limit int) ([]model.History, error) {
	query := `SELECT id, user_id, action, entity_id, details, ip_address, user_agent, created_at
	          FROM history ORDER BY created_at DESC, id DESC LIMIT ?`
	return r.scanList(r.DB.Query(query, limit))
}

// ListRecentByUser returns the newest audit entries for one user.
func (r *HistoryRepository) ListRecentByUser(userID int64, limit int) ([]model.History, error) {
	query := `SELECT id, user_id, action, entity_id, details, ip_address, user_agent, created_at
	          FROM history WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`
	return r.scanList(r.DB.Query(query, userID, limit))
}

func (r *HistoryRepository) scanList(rows *sql.Rows, err error) ([]model.History, error) {
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute history list query")
		return nil, err
	}
	defer rows.Close()

	entries := []model.History{}
	for rows.Next() {
		var entry model.History
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Action, &entry.EntityID,
			&entry.Details, &entry.IPAddress, &entry.UserAgent, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
