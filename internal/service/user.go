package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tharindu/classtrack/internal/apperror"
	"github.com/tharindu/classtrack/internal/auth"
	"github.com/tharindu/classtrack/internal/model"
	"github.com/tharindu/classtrack/internal/repository"
)

// UserService handles registration and credential checks. It also implements
// auth.CredentialChecker, which is what the Basic middleware consumes.
type UserService struct {
	repo      repository.UserRepository
	passwords *auth.PasswordService
	validate  *validator.Validate
	logger    *slog.Logger
}

var _ auth.CredentialChecker = (*UserService)(nil)

// NewUserService creates a UserService.
func NewUserService(repo repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{
		repo:      repo,
		passwords: passwords,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Register creates a new staff account. The username is trimmed; duplicates
// (case-insensitive) are rejected with a Conflict carrying the message the
// register form shows verbatim. Every account gets the ADMIN role — there is
// only one kind of staff today.
func (s *UserService) Register(ctx context.Context, creds model.Credentials) (*model.User, error) {
	creds.Username = strings.TrimSpace(creds.Username)

	if err := s.validate.Struct(creds); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := strings.ToLower(verrs[0].Field())
			return nil, apperror.ValidationFailed(field, fmt.Sprintf("invalid %s", field))
		}
		return nil, apperror.ValidationFailed("", "invalid registration payload")
	}

	// Check first for the friendly error; the unique index on
	// lower(username) still backstops a concurrent duplicate.
	if _, err := s.repo.GetUserByUsername(ctx, creds.Username); err == nil {
		return nil, apperror.Conflict("Username already exists")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("checking username %s: %w", creds.Username, err)
	}

	hash, err := s.passwords.Hash(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Username:     creds.Username,
		PasswordHash: hash,
		Role:         "ADMIN",
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// CheckCredentials verifies a username/password pair for the Basic
// middleware. Both a missing account and a wrong password come back as the
// same Unauthorized — no username probing.
func (s *UserService) CheckCredentials(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("looking up user %s: %w", username, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("invalid credentials")
	}

	return user, nil
}
