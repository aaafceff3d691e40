package model

import (
	"time"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Role         Role
}

// DoctorInfo is the caregiver-visible projection of a doctor record.
type DoctorInfo struct {
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
}
