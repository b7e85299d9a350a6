package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chefai/chefai/internal/domain/entity"
	"github.com/chefai/chefai/internal/domain/repository"
)

// SignupRepository writes the registration audit trail. Records are
// write-only: nothing in the service ever reads them back.
type SignupRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewSignupRepository(pool *pgxpool.Pool, timeout time.Duration) *SignupRepository {
	return &SignupRepository{pool: pool, timeout: timeout}
}

func (r *SignupRepository) Record(ctx context.Context, s *entity.Signup) error {
	if r.pool == nil {
		return ErrNoPool
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO signups (name, email, password_hash, avatar, registration_date,
			ip_address, user_agent, registration_source, is_email_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, s.Name, s.Email, s.PasswordHash, s.Avatar, s.RegistrationDate,
		nullIfEmpty(s.IPAddress), nullIfEmpty(s.UserAgent), s.RegistrationSource, s.IsEmailVerified)
	return err
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ repository.SignupRecorder = (*SignupRepository)(nil)
