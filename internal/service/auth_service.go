// Package service implements the application services on top of the
// repositories and the generative assistant gateway.
package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"trinethra/internal/models"
	"trinethra/internal/repository"
	"trinethra/internal/validation"
)

// AuthService manages the account registry and the active session.
type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	now      func() time.Time
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username    string
	DisplayName string
	Password    string
	Bio         string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		now:      time.Now,
	}
}

// Register creates a new account and establishes it as the active session.
// Usernames are stored lowercase and must be unique case-insensitively.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateDisplayName(in.DisplayName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewAlreadyExistsError(username)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	bio := strings.TrimSpace(in.Bio)
	if bio == "" {
		bio = "Joined the vision."
	}

	user := models.User{
		ID:          strconv.FormatInt(s.now().UnixMilli(), 10),
		Username:    username,
		DisplayName: in.DisplayName,
		Password:    string(hashed),
		Avatar:      AvatarURL(username),
		Bio:         bio,
	}

	if err := s.users.Append(ctx, user); err != nil {
		return nil, err
	}

	// Auto-login after signup.
	if err := s.sessions.Set(ctx, user); err != nil {
		return nil, err
	}

	stripped := user.WithoutSecret()
	return &stripped, nil
}

// Login authenticates by case-insensitive username and credential match, and
// persists the account (secret stripped) as the active session. Unknown user
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}

	if err := s.sessions.Set(ctx, *user); err != nil {
		return nil, err
	}

	stripped := user.WithoutSecret()
	return &stripped, nil
}

// ActiveUser returns the persisted session, or nil when none exists. The
// session is not re-validated against the registry.
func (s *AuthService) ActiveUser(ctx context.Context) (*models.User, error) {
	return s.sessions.Get(ctx)
}

// Logout clears the active session. Idempotent.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// AvatarURL derives a deterministic avatar for a username.
func AvatarURL(username string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(username)
}
