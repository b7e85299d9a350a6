package entity

import (
	"strings"
	"time"
)

// DefaultAvatar is assigned to every user at creation.
const DefaultAvatar = "👤"

// User is the aggregate root for the credential domain.
// PasswordHash holds a bcrypt hash and must never be serialized to clients.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail lower-cases and trims an email the way it is stored and
// looked up in both backends.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup is the write-only registration audit record. It is a superset of
// User plus request metadata and is never read back by any endpoint.
type Signup struct {
	Name               string
	Email              string
	PasswordHash       string
	Avatar             string
	RegistrationDate   time.Time
	IPAddress          string
	UserAgent          string
	RegistrationSource string
	IsEmailVerified    bool
}
