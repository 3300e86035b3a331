// file: service/password.go

package service

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// ErrHashing indicates an internal failure in the hashing worker, as opposed
// to a plain password mismatch.
var ErrHashing = errors.New("password hashing failed")

// PasswordHasher runs bcrypt on a bounded pool so that the deliberately slow
// hash cannot monopolize every request goroutine under load. Callers block
// on the semaphore, not on unbounded CPU contention.
type PasswordHasher struct {
	sem  *semaphore.Weighted
	cost int
}

// NewPasswordHasher creates a hasher with the given bcrypt cost. Concurrency
// is bounded by the number of CPUs.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{
		sem:  semaphore.NewWeighted(int64(runtime.NumCPU())),
		cost: cost,
	}
}

// Hash computes the bcrypt hash of a password.
func (p *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer p.sem.Release(1)

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", errors.Join(ErrHashing, err)
	}
	return string(bytes), nil
}

// Verify reports whether password matches the stored hash. A mismatch is a
// (false, nil) result; an error means the stored hash is malformed or the
// worker failed.
func (p *PasswordHasher) Verify(ctx context.Context, password, hash string) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer p.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, errors.Join(ErrHashing, err)
}
