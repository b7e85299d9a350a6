package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chefai/chefai/internal/domain/entity"
	"github.com/chefai/chefai/internal/domain/repository"
	"github.com/chefai/chefai/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrStoreUnavailable   = errors.New("credential stores unavailable")
)

// Backend identifies which credential store served a request. Selection is
// re-evaluated independently on every request; the two stores are never
// reconciled with each other.
type Backend string

const (
	BackendPrimary  Backend = "primary"
	BackendFallback Backend = "fallback"
)

// AuthService orchestrates the dual-backend credential workflow: try the
// primary store, fall back once on a storage error, never retry.
type AuthService struct {
	Primary  repository.CredentialStore
	Fallback repository.CredentialStore
	Signups  repository.SignupRecorder
	JWT      *helpers.JWTManager
	Logger   *logrus.Logger
}

func NewAuthService(primary, fallback repository.CredentialStore, signups repository.SignupRecorder, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Primary: primary, Fallback: fallback, Signups: signups, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// RequestMeta carries registration metadata captured for the audit trail.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type RegisterResult struct {
	User           *entity.User
	Token          string
	TokenExpiry    time.Time
	Backend        Backend
	SignupRecorded bool
}

type LoginResult struct {
	User        *entity.User
	Token       string
	TokenExpiry time.Time
	Backend     Backend
}

// Register creates the user in the primary store, falling back to the
// flat-file store on any primary storage error. A duplicate email in the
// consulted store is final and does not trigger the fallback.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, meta RequestMeta) (*RegisterResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = entity.NormalizeEmail(in.Email)

	res := &RegisterResult{Backend: BackendPrimary}

	u, err := s.createIn(ctx, s.Primary, in)
	switch {
	case err == nil:
		res.SignupRecorded = s.recordSignup(ctx, u, meta)
	case errors.Is(err, ErrEmailTaken):
		return nil, err
	default:
		s.log().WithError(err).WithField("email", in.Email).Warn("primary store failed, using fallback storage")
		res.Backend = BackendFallback
		u, err = s.createIn(ctx, s.Fallback, in)
		if err != nil {
			return nil, err
		}
	}
	res.User = u

	token, exp, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	res.Token = token
	res.TokenExpiry = exp

	s.log().WithFields(logrus.Fields{
		"email":   u.Email,
		"backend": res.Backend,
	}).Info("user registered")
	return res, nil
}

// createIn runs the per-store half of registration: duplicate check, hash,
// create. Storage errors come back unwrapped so the caller can tell them
// apart from ErrEmailTaken.
func (s *AuthService) createIn(ctx context.Context, store repository.CredentialStore, in RegisterInput) (*entity.User, error) {
	_, err := store.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Avatar:       entity.DefaultAvatar,
	}
	if err := store.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// recordSignup writes the audit record best-effort. A failure is logged and
// swallowed; it never rolls back user creation.
func (s *AuthService) recordSignup(ctx context.Context, u *entity.User, meta RequestMeta) bool {
	if s.Signups == nil {
		return false
	}
	err := s.Signups.Record(ctx, &entity.Signup{
		Name:               u.Name,
		Email:              u.Email,
		PasswordHash:       u.PasswordHash,
		Avatar:             u.Avatar,
		RegistrationDate:   time.Now(),
		IPAddress:          meta.IP,
		UserAgent:          meta.UserAgent,
		RegistrationSource: "web_app",
		IsEmailVerified:    false,
	})
	if err != nil {
		s.log().WithError(err).WithField("email", u.Email).Warn("signup audit record failed")
		return false
	}
	return true
}

// Login looks the user up, primary first, and verifies the password.
// Not-found in a reachable store is final; only a storage error moves the
// lookup to the fallback. ErrStoreUnavailable means both stores failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = entity.NormalizeEmail(email)

	backend := BackendPrimary
	u, err := s.Primary.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log().WithError(err).WithField("email", email).Warn("primary store failed, using fallback storage")
		backend = BackendFallback
		u, err = s.Fallback.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	if errors.Is(err, repository.ErrNotFound) {
		u = nil
	}

	if u == nil {
		s.log().WithFields(logrus.Fields{"email": email, "backend": backend}).Info("login: user not found")
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		s.log().WithFields(logrus.Fields{"email": email, "backend": backend}).Info("login: password mismatch")
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log().WithFields(logrus.Fields{"email": email, "backend": backend}).Info("login successful")
	return &LoginResult{User: u, Token: token, TokenExpiry: exp, Backend: backend}, nil
}

// Lookup resolves a validated token's user id against the stores, primary
// first. A fallback failure reads as not-found, matching the endpoint's 404.
func (s *AuthService) Lookup(ctx context.Context, id string) (*entity.User, Backend, error) {
	u, err := s.Primary.FindByID(ctx, id)
	if err == nil {
		return u, BackendPrimary, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, BackendPrimary, ErrUserNotFound
	}

	s.log().WithError(err).WithField("user_id", id).Warn("primary store failed, using fallback storage")
	u, err = s.Fallback.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log().WithError(err).WithField("user_id", id).Warn("fallback store failed")
		}
		return nil, BackendFallback, ErrUserNotFound
	}
	return u, BackendFallback, nil
}

func (s *AuthService) log() *logrus.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logrus.StandardLogger()
}
