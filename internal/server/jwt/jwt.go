package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is written into the iss claim of every token.
const Issuer = "postboard"

// DefaultTTL is the access token lifetime used when none is configured.
const DefaultTTL = time.Hour

// Claims represents JWT claims
type Claims struct {
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
	jwt.RegisteredClaims
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service provides stateless JWT token generation and validation.
// It is safe for concurrent use.
type Service struct {
	now    func() time.Time
	secret []byte
	ttl    time.Duration
}

// NewService creates a new JWT service
// secret should be a cryptographically secure random string
func NewService(secret []byte, ttl time.Duration, opts ...Option) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &Service{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the lifetime of issued tokens.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed access token for the user.
func (s *Service) Issue(userID int64, username string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	// exp хранится с точностью до секунды
	return tokenString, claims.ExpiresAt.Time, nil
}

// Verify checks signature, expiry and claim structure, in that order,
// and returns the embedded claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	// MapClaims декодируется из любого JSON объекта, поэтому типы полей
	// проверяются только после подписи и exp
	mc := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(tokenString, mc, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithJSONNumber(),
	)
	if err != nil {
		return nil, classify(err)
	}

	return claimsFromMap(mc)
}

// claimsFromMap converts verified map claims into Claims.
func claimsFromMap(mc jwt.MapClaims) (*Claims, error) {
	var userID int64
	if n, ok := mc["user_id"].(json.Number); ok {
		userID, _ = n.Int64()
	}
	if userID <= 0 {
		return nil, fmt.Errorf("%w: missing or invalid user_id", ErrMalformedToken)
	}

	username, _ := mc["username"].(string)
	if username == "" {
		return nil, fmt.Errorf("%w: missing or invalid username", ErrMalformedToken)
	}

	claims := &Claims{UserID: userID, Username: username}

	var err error
	if claims.ExpiresAt, err = mc.GetExpirationTime(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if claims.IssuedAt, err = mc.GetIssuedAt(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if claims.NotBefore, err = mc.GetNotBefore(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if claims.Issuer, err = mc.GetIssuer(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	return claims, nil
}

// classify maps golang-jwt errors onto this package's error kinds.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	default:
		// not-yet-valid, wrong issuer, missing exp
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
}
