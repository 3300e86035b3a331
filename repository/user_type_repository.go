package repository

import (
	"database/sql"

	"github.com/555cider/admin-server/logger"
	"github.com/555cider/admin-server/model"
)

// IUserTypeRepository defines lookups over user types and their permissions.
type IUserTypeRepository interface {
	FindByID(id int64) (*model.UserType, error)
	GetPermissions(userTypeID int64) ([]string, error)
}

type UserTypeRepository struct {
	DB *sql.DB
}

func NewUserTypeRepository(db *sql.DB) *UserTypeRepository {
	return &UserTypeRepository{DB: db}
}

func (r *UserTypeRepository) FindByID(id int64) (*model.UserType, error) {
	userType := &model.UserType{}
	var description sql.NullString
	query := `SELECT id, name, description, created_at, updated_at FROM user_type WHERE id = ?`
	err := r.DB.QueryRow(query, id).Scan(
		&userType.ID, &userType.Name, &description,
		&userType.CreatedAt, &userType.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		userType.Description = description.String
	}
	return userType, nil
}

// GetPermissions returns the permission names granted to a user type.
func (r *UserTypeRepository) GetPermissions(userTypeID int64) ([]string, error) {
	query := `SELECT permission.name
	          FROM permission
	          INNER JOIN user_type_permission ON permission.id = user_type_permission.permission_id
	          WHERE user_type_permission.user_type_id = ?
	          ORDER BY permission.name`
	rows, err := r.DB.Query(query, userTypeID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_type_id", userTypeID).Error("Failed to query permissions")
		return nil, err
	}
	defer rows.Close()

	permissions := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		permissions = append(permissions, name)
	}
	return permissions, rows.Err()
}
