package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/carelog/carelog-server-go/internal/config"
	apperrors "github.com/carelog/carelog-server-go/internal/errors"
	"github.com/carelog/carelog-server-go/internal/model"
	"github.com/carelog/carelog-server-go/internal/repository"
	"github.com/carelog/carelog-server-go/internal/util"
)

const minPasswordLength = 6

type RegisterParams struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

type LoginResult struct {
	Token string            `json:"token"`
	User  model.SessionUser `json:"user"`
}

type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	if params.Name == "" || params.Email == "" || params.Password == "" ||
		params.ConfirmPassword == "" || params.Role == "" {
		return nil, apperrors.ValidationError("All fields are required")
	}

	role := model.Role(params.Role)
	if !role.Valid() {
		return nil, apperrors.InvalidInput("role", "must be doctor or caregiver")
	}

	if len(params.Password) < minPasswordLength {
		return nil, apperrors.ValidationError("Password must be at least 6 characters")
	}

	if params.Password != params.ConfirmPassword {
		return nil, apperrors.ValidationError("Passwords do not match")
	}

	if !util.IsValidEmail(params.Email) {
		return nil, apperrors.InvalidInput("email", "invalid format")
	}

	// Uniqueness is role-scoped: a doctor and a caregiver may share an email.
	// This pre-check races with concurrent registrations; the database unique
	// constraint is the authoritative check below.
	existing, err := s.userRepo.FindByEmailAndRole(ctx, params.Email, role)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("User")
	}

	user, err := s.userRepo.Create(ctx, model.CreateUserParams{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: util.HashPassword(params.Password),
		Role:         role,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("User")
		}
		return nil, apperrors.Database(err)
	}

	log.Info().
		Str("userId", user.ID).
		Str("role", string(user.Role)).
		Msg("user registered")

	return user, nil
}

// Login deliberately reports one generic failure for unknown email, wrong
// role, and wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string, role model.Role) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmailAndRole(ctx, email, role)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil || !util.CheckPassword(password, user.PasswordHash) {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	token, err := util.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	session, err := s.sessionRepo.Create(ctx, model.CreateSessionParams{
		TokenHash: util.HashToken(token),
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		UserRole:  user.Role,
		ExpiresAt: time.Now().Add(config.SessionTTL),
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().
		Str("userId", user.ID).
		Str("role", string(user.Role)).
		Time("expiresAt", session.ExpiresAt).
		Msg("user logged in")

	return &LoginResult{
		Token: token,
		User:  session.User(),
	}, nil
}

// Logout is idempotent: an absent or already-invalid token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.DeleteByTokenHash(ctx, util.HashToken(token)); err != nil {
		return apperrors.Database(err)
	}
	return nil
}
