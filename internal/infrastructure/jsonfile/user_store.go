// Package jsonfile implements the fallback credential store: a single JSON
// file holding the full list of users. Every mutation rewrites the whole
// file. A process-local mutex serializes writers; multi-process deployments
// are out of scope for this store.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chefai/chefai/internal/domain/entity"
	"github.com/chefai/chefai/internal/domain/repository"
)

// record is the on-disk shape of one user.
type record struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
	Avatar       string `json:"avatar"`
}

type UserStore struct {
	path string
	mu   sync.Mutex
}

func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// load reads the whole file, lazily initializing it to an empty list.
// Callers must hold the mutex.
func (s *UserStore) load() ([]record, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		if werr := os.WriteFile(s.path, []byte("[]"), 0o644); werr != nil {
			return nil, werr
		}
		return []record{}, nil
	}
	if err != nil {
		return nil, err
	}
	var users []record
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) save(users []record) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}
	email = entity.NormalizeEmail(email)
	for _, r := range users {
		if entity.NormalizeEmail(r.Email) == email {
			return toEntity(r), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) FindByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, r := range users {
		if r.ID == id {
			return toEntity(r), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	email := entity.NormalizeEmail(u.Email)
	for _, r := range users {
		if entity.NormalizeEmail(r.Email) == email {
			return repository.ErrEmailExists
		}
	}

	u.ID = uuid.NewString()
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	users = append(users, record{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Avatar:       u.Avatar,
	})
	return s.save(users)
}

func toEntity(r record) *entity.User {
	return &entity.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Avatar:       r.Avatar,
	}
}

var _ repository.CredentialStore = (*UserStore)(nil)
