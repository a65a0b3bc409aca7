// Package service holds the business logic behind the HTTP handlers.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"shoplist/internal/auth"
	"shoplist/internal/models"
	"shoplist/internal/observability"
	"shoplist/internal/repository"
	"shoplist/internal/validation"

	"github.com/google/uuid"
)

// TokenType is reported alongside every issued access token.
const TokenType = "bearer"

// AuthService registers users, checks credentials and resolves session tokens.
type AuthService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
	newID  func() string
	now    func() time.Time
}

type CredentialsInput struct {
	Username string
	Password string
}

// AuthResult is the outcome of a successful register or login.
type AuthResult struct {
	Token string
	User  models.PublicUser
}

// Response renders the result in the wire shape returned to clients.
func (r *AuthResult) Response() models.AuthResponse {
	return models.AuthResponse{
		AccessToken: r.Token,
		TokenType:   TokenType,
		User:        r.User,
	}
}

func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Register creates a user. An existing username is never overwritten: the
// pre-check catches the common case and the unique index catches races.
func (s *AuthService) Register(ctx context.Context, in CredentialsInput) (result *AuthResult, err error) {
	ctx, span := observability.GetTraceLayer().TraceAPIToServiceCall(ctx, "AuthService", "Register")
	defer func() { observability.End(span, err) }()

	username := strings.TrimSpace(in.Username)
	if err := validation.ValidateUsername(username); err != nil {
		observability.RecordAuth("register", "invalid")
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		observability.RecordAuth("register", "invalid")
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.RecordAuth("register", "duplicate")
		return nil, models.NewDuplicateUsernameError(username)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, models.NewValidationError(err.Error())
		}
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		ID:           s.newID(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if models.CodeOf(err) == models.CodeDuplicateUsername {
			observability.RecordAuth("register", "duplicate")
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.RecordAuth("register", "success")
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Login checks credentials. A blank field, an unknown username and a wrong
// password all yield the same error after the same bcrypt work.
func (s *AuthService) Login(ctx context.Context, in CredentialsInput) (result *AuthResult, err error) {
	ctx, span := observability.GetTraceLayer().TraceAPIToServiceCall(ctx, "AuthService", "Login")
	defer func() { observability.End(span, err) }()

	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		s.hasher.VerifyDummy(in.Password)
		observability.RecordAuth("login", "invalid_credentials")
		return nil, models.NewInvalidCredentialsError()
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.hasher.VerifyDummy(in.Password)
		observability.RecordAuth("login", "invalid_credentials")
		return nil, models.NewInvalidCredentialsError()
	}
	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		observability.RecordAuth("login", "invalid_credentials")
		return nil, models.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.RecordAuth("login", "success")
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Resolve validates token and loads its user. It never writes.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.PublicUser, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			observability.RecordAuth("resolve", "expired")
			return nil, models.NewTokenError(models.CodeExpiredToken, err)
		}
		observability.RecordAuth("resolve", "malformed")
		return nil, models.NewTokenError(models.CodeMalformedToken, err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if models.CodeOf(err) == models.CodeNotFound {
			observability.RecordAuth("resolve", "user_not_found")
			return nil, models.NewUserNotFoundError(claims.UserID)
		}
		return nil, err
	}
	return user, nil
}
