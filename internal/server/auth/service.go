// Package auth coordinates signup, login and request authentication on top of
// the credential store, the password hasher and the session token service.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iudanet/postboard/internal/crypto"
	"github.com/iudanet/postboard/internal/models"
	"github.com/iudanet/postboard/internal/server/jwt"
	"github.com/iudanet/postboard/internal/server/storage"
	"github.com/iudanet/postboard/internal/validation"
	"github.com/iudanet/postboard/pkg/api"
)

const (
	// CookieName is the cookie that carries the session credential
	CookieName = api.CookieName
	// Scheme prefixes the token in the credential: "<scheme> <token>"
	Scheme = api.AuthScheme
)

// Hasher derives and verifies password digests
type Hasher interface {
	Hash(password, salt string) string
	Verify(password, salt, digest string) bool
}

// TokenService issues and verifies session tokens
type TokenService interface {
	Issue(userID int64, username string) (string, time.Time, error)
	Verify(token string) (*jwt.Claims, error)
	TTL() time.Duration
}

// Session is the result of a successful login
type Session struct {
	ExpiresAt time.Time
	Token     string
	Username  string
	TTL       time.Duration
	UserID    int64
}

// Credential formats the session token for transport ("Bearer <token>")
func (s *Session) Credential() string {
	return Scheme + " " + s.Token
}

// Service implements the signup, login and request authentication flows.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	logger  *slog.Logger
	users   storage.UserStorage
	hasher  Hasher
	tokens  TokenService
	newSalt func() (string, error)
}

// NewService creates a new auth service
func NewService(logger *slog.Logger, users storage.UserStorage, hasher Hasher, tokens TokenService) *Service {
	return &Service{
		logger:  logger,
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		newSalt: crypto.GenerateSalt,
	}
}

// Signup registers a new user. No token is issued; the user logs in afterwards.
func (s *Service) Signup(ctx context.Context, username, password string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// Быстрая проверка; атомарность обеспечивает UNIQUE в хранилище.
	// Занятое имя отклоняется независимо от пароля
	_, err := s.users.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		s.logger.WarnContext(ctx, "signup rejected: username taken", slog.String("username", username))
		return nil, ErrUsernameTaken
	case !errors.Is(err, storage.ErrUserNotFound):
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	salt, err := s.newSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	user := &models.User{
		Username:     username,
		Salt:         salt,
		PasswordHash: s.hasher.Hash(password, salt),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			// проиграли гонку с параллельной регистрацией
			s.logger.WarnContext(ctx, "signup rejected: username taken concurrently", slog.String("username", username))
			return nil, fmt.Errorf("%w: %w", ErrUsernameTaken, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID))

	return user, nil
}

// Login verifies the password and issues a session token.
// Unknown username and wrong password both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// тратим столько же времени, сколько на проверку настоящего пароля
			_ = s.hasher.Hash(password, username)
			s.logger.WarnContext(ctx, "login failed: user not found", slog.String("username", username))
			return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, ErrUnknownUser)
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if !s.hasher.Verify(password, user.Salt, user.PasswordHash) {
		s.logger.WarnContext(ctx, "login failed: invalid password", slog.String("username", username))
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, ErrPasswordMismatch)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID))

	return &Session{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: expiresAt,
		TTL:       s.tokens.TTL(),
	}, nil
}

// AuthenticateRequest validates a "<scheme> <token>" credential and returns
// the identity embedded in the token. It performs no I/O.
func (s *Service) AuthenticateRequest(credential string) (*models.Identity, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, ErrMissingCredential
	}

	scheme, token, ok := strings.Cut(credential, " ")
	if !ok || !strings.EqualFold(scheme, Scheme) {
		return nil, fmt.Errorf("%w: expected %q scheme", ErrMalformedToken, Scheme)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	return &models.Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
