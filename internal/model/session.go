package model

import (
	"time"
)

// Session holds a bearer token hash and a snapshot of the user taken at
// login time. The snapshot is deliberately not a reference: profile changes
// after login do not propagate to active sessions.
type Session struct {
	ID        string    `db:"id" json:"id"`
	TokenHash string    `db:"token_hash" json:"-"`
	UserID    string    `db:"user_id" json:"-"`
	UserName  string    `db:"user_name" json:"-"`
	UserEmail string    `db:"user_email" json:"-"`
	UserRole  Role      `db:"user_role" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

func (s *Session) User() SessionUser {
	return SessionUser{
		ID:    s.UserID,
		Name:  s.UserName,
		Email: s.UserEmail,
		Role:  s.UserRole,
	}
}

// SessionUser is the denormalized user attached to authenticated requests.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type CreateSessionParams struct {
	TokenHash string
	UserID    string
	UserName  string
	UserEmail string
	UserRole  Role
	ExpiresAt time.Time
}
