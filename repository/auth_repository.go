// file: repository/auth_repository.go

package repository

import (
	"database/sql"
	"time"

	"github.com/555cider/admin-server/logger"
	"github.com/555cider/admin-server/model"

	"github.com/sirupsen/logrus"
)

// IAuthRepository defines the contract for credential and refresh token
// database operations.
type IAuthRepository interface {
	FindCredentialByUsername(username string) (*model.Credential, error)
	SaveRefreshToken(userID int64, token string, expiresAt time.Time) error
	FindRefreshToken(userID int64) (*model.RefreshToken, error)
	CreateUser(username, passwordHash string, userTypeID int64, isActive bool) (int64, error)
}

// AuthRepository implements IAuthRepository.
type AuthRepository struct {
	DB *sql.DB
}

// NewAuthRepository creates a new AuthRepository.
func NewAuthRepository(db *sql.DB) *AuthRepository {
	return &AuthRepository{DB: db}
}

// FindCredentialByUsername looks up the login credential for an active user.
// Inactive accounts never resolve here. Returns sql.ErrNoRows on a miss.
func (r *AuthRepository) FindCredentialByUsername(username string) (*model.Credential, error) {
	cred := &model.Credential{}
	query := `SELECT admin_user.id, admin_user.username, admin_user.password_hash, user_type.name
	          FROM admin_user
	          INNER JOIN user_type ON admin_user.user_type_id = user_type.id
	          WHERE admin_user.username = ? AND admin_user.is_active = 1`
	err := r.DB.QueryRow(query, username).Scan(&cred.ID, &cred.Username, &cred.PasswordHash, &cred.Role)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute credential lookup query")
		}
		return nil, err
	}
	return cred, nil
}

// SaveRefreshToken upserts the refresh token row for a user. A new token
// replaces the prior one; at most one live row exists per user.
func (r *AuthRepository) SaveRefreshToken(userID int64, token string, expiresAt time.Time) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":    userID,
		"expires_at": expiresAt,
	})
	log.Info("Executing query to save refresh token")

	query := `INSERT INTO user_refresh_token (user_id, refresh_token, expires_at, updated_at)
	          VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	          ON CONFLICT(user_id) DO UPDATE
	          SET refresh_token = excluded.refresh_token,
	              expires_at = excluded.expires_at,
	              updated_at = CURRENT_TIMESTAMP`
	_, err := r.DB.Exec(query, userID, token, expiresAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute save refresh token query")
		return err
	}
	return nil
}

// FindRefreshToken retrieves the stored refresh token record for a user.
func (r *AuthRepository) FindRefreshToken(userID int64) (*model.RefreshToken, error) {
	token := &model.RefreshToken{}
	query := `SELECT user_id, refresh_token, expires_at, updated_at FROM user_refresh_token WHERE user_id = ?`
	err := r.DB.QueryRow(query, userID).Scan(&token.UserID, &token.Token, &token.ExpiresAt, &token.UpdatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute find refresh token query")
		}
		return nil, err
	}
	return token, nil
}

// CreateUser inserts a new admin user and returns its id.
func (r *AuthRepository) CreateUser(username, passwordHash string, userTypeID int64, isActive bool) (int64, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"username":     username,
		"user_type_id": userTypeID,
	})
	log.Info("Executing query to create a new user")

	var id int64
	query := `INSERT INTO admin_user (username, password_hash, user_type_id, is_active, created_at, updated_at)
	          VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	          RETURNING id`
	err := r.DB.QueryRow(query, username, passwordHash, userTypeID, isActive).Scan(&id)
	if err != nil {
		log.WithError(err).Error("Failed to execute create user query")
		return 0, err
	}
	return id, nil
}
