package model

import (
	"database/sql"
	"time"
)

// User is the admin_user entity.
type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email,omitempty"`
	PasswordHash string       `json:"-"`
	UserTypeID   int64        `json:"user_type_id"`
	IsActive     bool         `json:"is_active"`
	LastLoginAt  sql.NullTime `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Credential is the narrow login view of an active user: the stored hash plus
// the user type name carried into token claims as the role.
type Credential struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
}
