package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User represents an account in the system. A local user always carries a
// password hash; a google user carries a GoogleID and may have no password.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone,omitempty"`
	Role         string    `json:"role"`
	Provider     string    `json:"provider"`
	PasswordHash *string   `json:"-"` // Do not expose password hash in JSON responses
	GoogleID     *string   `json:"-"`
	Picture      *string   `json:"picture,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewLocalUser builds a password-backed user. The hash must already be
// computed; callers never hand plaintext to the model layer.
func NewLocalUser(email, name string, phone *string, passwordHash, role string) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		Phone:        phone,
		Role:         role,
		Provider:     ProviderLocal,
		PasswordHash: &passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewGoogleUser builds a federated user with no local password.
func NewGoogleUser(email, name, googleID string, picture *string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		Role:      RoleUser,
		Provider:  ProviderGoogle,
		GoogleID:  &googleID,
		Picture:   picture,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasPassword reports whether local credential checks can apply to this user.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Identity is the token-derived principal attached to a request by the
// auth middleware.
type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}
