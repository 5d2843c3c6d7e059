package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           UserID
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NewUser(email, passwordHash string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, Validation("a valid email is required")
	}
	if passwordHash == "" {
		return nil, Validation("password hash cannot be empty")
	}
	now := time.Now().UTC()
	return &User{
		ID:           NewUserID(),
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *User) Activate() {
	if u.IsActive {
		return
	}
	u.IsActive = true
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) Deactivate() {
	if !u.IsActive {
		return
	}
	u.IsActive = false
	u.UpdatedAt = time.Now().UTC()
}

// ChangePasswordHash swaps in a new hash. Identical hashes are a no-op.
func (u *User) ChangePasswordHash(hash string) error {
	if hash == "" {
		return Validation("password hash cannot be empty")
	}
	if hash == u.PasswordHash {
		return nil
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now().UTC()
	return nil
}
