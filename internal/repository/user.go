package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/carelog/carelog-server-go/internal/model"
)

type UserRepository interface {
	FindByEmailAndRole(ctx context.Context, email string, role model.Role) (*model.User, error)
	Create(ctx context.Context, params model.CreateUserParams) (*model.User, error)
	ListDoctors(ctx context.Context) ([]model.DoctorInfo, error)
	ListDoctorEmails(ctx context.Context) ([]string, error)
}

type userDB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type userRepo struct {
	db userDB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) FindByEmailAndRole(ctx context.Context, email string, role model.Role) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM users WHERE email = $1 AND role = $2
	`, email, role)
	return HandleNotFound(&user, err)
}

func (r *userRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.Name, params.Email, params.PasswordHash, params.Role)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ListDoctors(ctx context.Context) ([]model.DoctorInfo, error) {
	doctors := []model.DoctorInfo{}
	err := r.db.SelectContext(ctx, &doctors, `
		SELECT email, name FROM users
		WHERE role = $1
		ORDER BY name
	`, model.RoleDoctor)
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *userRepo) ListDoctorEmails(ctx context.Context) ([]string, error) {
	emails := []string{}
	err := r.db.SelectContext(ctx, &emails, `
		SELECT email FROM users WHERE role = $1
	`, model.RoleDoctor)
	if err != nil {
		return nil, err
	}
	return emails, nil
}
