package repository

import (
	"database/sql"

	"github.com/555cider/admin-server/logger"
	"github.com/555cider/admin-server/model"
)

// IUserRepository defines the user read/update surface the auth flows need.
type IUserRepository interface {
	FindByID(id int64) (*model.User, error)
	UpdateLastLogin(userID int64) error
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(id int64) (*model.User, error) {
	user := &model.User{}
	var email sql.NullString
	query := `SELECT id, username, email, password_hash, user_type_id, is_active, last_login_at, created_at, updated_at
	          FROM admin_user WHERE id = ?`
	err := r.DB.QueryRow(query, id).Scan(
		&user.ID, &user.Username, &email, &user.PasswordHash,
		&user.UserTypeID, &user.IsActive, &user.LastLoginAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if email.Valid {
		user.Email = email.String
	}
	return user, nil
}

func (r *UserRepository) UpdateLastLogin(userID int64) error {
	query := `UPDATE admin_user SET last_login_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.DB.Exec(query, userID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to update last login time")
		return err
	}
	return nil
}
