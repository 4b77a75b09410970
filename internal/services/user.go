package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/cost-tracker/internal/dto"
	"github.com/GregMSThompson/cost-tracker/internal/errs"
	"github.com/GregMSThompson/cost-tracker/internal/models"
	"github.com/GregMSThompson/cost-tracker/pkg/logger"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 72 // bcrypt input limit in bytes
)

const invalidCredentials = "invalid email or password"

type userStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type tokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type userService struct {
	Store  userStore
	Hasher passwordHasher
	Tokens tokenIssuer
}

func NewUserService(store userStore, hasher passwordHasher, tokens tokenIssuer) *userService {
	return &userService{
		Store:  store,
		Hasher: hasher,
		Tokens: tokens,
	}
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResult, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return dto.AuthResult{}, errs.NewValidationError("name, email, and password are required")
	}
	if err := checkPassword(req.Password); err != nil {
		return dto.AuthResult{}, err
	}

	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return dto.AuthResult{}, err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		log.Warn("failed to create user", "error", err)
		return dto.AuthResult{}, err
	}

	token, err := s.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		log.Error("failed to issue token", "error", err)
		return dto.AuthResult{}, err
	}

	log.Info("user registered", "uid", user.ID)
	return dto.AuthResult{User: user, Token: token}, nil
}

// Login returns the same unauthorized error for an unknown email and a wrong
// password.
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResult, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return dto.AuthResult{}, errs.NewValidationError("email and password are required")
	}

	user, err := s.Store.GetUserByEmail(ctx, email)
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return dto.AuthResult{}, errs.NewUnauthorizedError(invalidCredentials)
		}
		return dto.AuthResult{}, err
	}
	if !s.Hasher.Compare(user.PasswordHash, req.Password) {
		log.Info("login rejected", "uid", user.ID)
		return dto.AuthResult{}, errs.NewUnauthorizedError(invalidCredentials)
	}

	token, err := s.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		log.Error("failed to issue token", "error", err)
		return dto.AuthResult{}, err
	}
	return dto.AuthResult{User: user, Token: token}, nil
}

func (s *userService) Me(ctx context.Context, uid string) (*models.User, error) {
	return s.Store.GetUser(ctx, uid)
}

func (s *userService) UpdateProfile(ctx context.Context, uid string, req dto.UpdateProfileRequest) (*models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.Store.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" {
		return nil, errs.NewValidationError("name and email are required")
	}

	changed := false
	if name != user.Name {
		user.Name = name
		changed = true
	}
	if email != user.Email {
		user.Email = email
		changed = true
	}
	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			return nil, errs.NewValidationError("current password is required to change password")
		}
		if !s.Hasher.Compare(user.PasswordHash, req.CurrentPassword) {
			return nil, errs.NewValidationError("current password is incorrect")
		}
		if err := checkPassword(req.NewPassword); err != nil {
			return nil, err
		}
		hash, err := s.Hasher.Hash(req.NewPassword)
		if err != nil {
			log.Error("failed to hash password", "error", err)
			return nil, err
		}
		user.PasswordHash = hash
		changed = true
	}
	if !changed {
		return nil, errs.NewValidationError("no changes to update")
	}

	user.UpdatedAt = time.Now()
	if err := s.Store.UpdateUser(ctx, user); err != nil {
		log.Warn("failed to update user", "error", err)
		return nil, err
	}

	log.Info("profile updated")
	return user, nil
}

func checkPassword(password string) error {
	switch {
	case len(password) < minPasswordLength:
		return errs.NewValidationError("password must be at least 6 characters long")
	case len(password) > maxPasswordLength:
		return errs.NewValidationError("password must be at most 72 bytes long")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
