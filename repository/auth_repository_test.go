// file: repository/auth_repository_test.go

package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAuthRepository_FindCredentialByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuthRepository(db)

	t.Run("active user resolves with its role", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "name"}).
			AddRow(7, "alice", "$2a$10$hash", "admin")
		mock.ExpectQuery("SELECT admin_user.id, admin_user.username").
			WithArgs("alice").
			WillReturnRows(rows)

		cred, err := repo.FindCredentialByUsername("alice")
		assert.NoError(t, err)
		assert.Equal(t, int64(7), cred.ID)
		assert.Equal(t, "alice", cred.Username)
		assert.Equal(t, "admin", cred.Role)
	})

	t.Run("missing or inactive user yields no rows", func(t *testing.T) {
		mock.ExpectQuery("SELECT admin_user.id, admin_user.username").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindCredentialByUsername("ghost")
		assert.Equal(t, sql.ErrNoRows, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRepository_SaveRefreshToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuthRepository(db)
	expiresAt := time.Now().Add(24 * time.Hour)

	mock.ExpectExec("INSERT INTO user_refresh_token").
		WithArgs(int64(7), "token-value", expiresAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.SaveRefreshToken(7, "token-value", expiresAt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRepository_FindRefreshToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuthRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"user_id", "refresh_token", "expires_at", "updated_at"}).
		AddRow(7, "token-value", now.Add(24*time.Hour), now)
	mock.ExpectQuery("SELECT user_id, refresh_token, expires_at, updated_at FROM user_refresh_token").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	token, err := repo.FindRefreshToken(7)
	assert.NoError(t, err)
	assert.Equal(t, "token-value", token.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRepository_CreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuthRepository(db)

	rows := sqlmock.NewRows([]string{"id"}).AddRow(11)
	mock.ExpectQuery("INSERT INTO admin_user").
		WithArgs("bob", "$2a$10$hash", int64(2), true).
		WillReturnRows(rows)

	id, err := repo.CreateUser("bob", "$2a$10$hash", 2, true)
	assert.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
