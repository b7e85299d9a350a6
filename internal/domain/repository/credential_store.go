package repository

import (
	"context"
	"errors"

	"github.com/chefai/chefai/internal/domain/entity"
)

var (
	// ErrNotFound means the store was reachable and the record is absent.
	// Any other error from a store means the store itself failed.
	ErrNotFound = errors.New("not found")

	// ErrEmailExists is returned by Create when the email is already taken
	// within that store.
	ErrEmailExists = errors.New("email already exists")
)

// CredentialStore persists user records. Two implementations exist: the
// postgres-backed primary and the flat-file fallback. The two are never
// synchronized with each other; callers re-select per request.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
}

// SignupRecorder captures the write-only registration audit trail.
type SignupRecorder interface {
	Record(ctx context.Context, s *entity.Signup) error
}
