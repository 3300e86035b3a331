// file: service/password_test.go

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	ctx := context.Background()
	password := "mySecretPassword123"

	hash, err := hasher.Hash(ctx, password)
	assert.NoError(t, err)
	assert.NotEqual(t, password, hash)

	match, err := hasher.Verify(ctx, password, hash)
	assert.NoError(t, err)
	assert.True(t, match)

	match, err = hasher.Verify(ctx, "notMyPassword", hash)
	assert.NoError(t, err)
	assert.False(t, match)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	_, err := hasher.Verify(context.Background(), "password123", "not-a-bcrypt-hash")
	assert.ErrorIs(t, err, ErrHashing)
}

func TestPasswordHasher_CancelledContext(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := hasher.Hash(ctx, "password123")
	assert.Error(t, err)
}
