package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"userdir/internal/auth"
	apperrors "userdir/internal/errors"
	"userdir/internal/model"
	"userdir/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, req *model.CreateUserRequest) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	validator  *UserValidator
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, validator *UserValidator) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		validator:  validator,
	}
}

// Register validates input, persists the new user and issues a token for
// the created identity.
func (s *authService) Register(ctx context.Context, req *model.CreateUserRequest) (*model.User, string, error) {
	req.Normalize()
	if err := s.validator.ValidateCreate(req); err != nil {
		return nil, "", err
	}

	if err := checkEmailFree(ctx, s.userRepo, req.Email); err != nil {
		return nil, "", err
	}

	user, err := newUserFromRequest(req)
	if err != nil {
		return nil, "", err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates credentials and issues a token. Unknown email and
// wrong password both surface as ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// checkEmailFree rejects an email that is already registered. The
// check-then-insert sequence is not transactional; the unique index on
// email catches the race and Create reports the same duplicate error.
func checkEmailFree(ctx context.Context, repo repository.UserRepository, email string) error {
	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return apperrors.ErrDuplicateEmail
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("check existing email: %w", err)
	}
	return nil
}

// newUserFromRequest hashes the password and builds the record with its
// creation defaults.
func newUserFromRequest(req *model.CreateUserRequest) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	return &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         model.Role(req.Role),
		Status:       model.Status(req.Status),
		ProfilePhoto: model.DefaultProfilePhoto,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
