package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/flowcrm/customer-system/internal/core/domain"
	"github.com/flowcrm/customer-system/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// dummyHash is a valid bcrypt digest compared against on the unknown-identifier
// path so that a failed lookup and a failed password verification cost the
// same and return the same error.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService implements the bootstrap registration policy and the session
// gate.
type AuthService struct {
	users          ports.UserRepository
	sessions       ports.SessionStore
	jwtSecret      string
	sessionTTL     time.Duration
	strictPassword bool
	logger         zerolog.Logger
}

// AuthOption tweaks AuthService construction.
type AuthOption func(*AuthService)

// WithStrictPasswords enables the upper/lower/digit/special password rule on
// registration.
func WithStrictPasswords() AuthOption {
	return func(s *AuthService) { s.strictPassword = true }
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, jwtSecret string, sessionTTL time.Duration, logger zerolog.Logger, opts ...AuthOption) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	s := &AuthService{
		users:      users,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CanRegister reports whether the user store is still empty. The cardinality
// is queried on every call rather than cached, so the answer survives
// restarts and concurrent registrations.
func (s *AuthService) CanRegister(ctx context.Context) (bool, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n == 0, nil
}

// Register creates the bootstrap administrator. Once any user exists the
// registration is closed for the lifetime of the store.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	open, err := s.CanRegister(ctx)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, domain.ErrRegistrationClosed
	}

	normalizedEmail, err := domain.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	if s.strictPassword {
		if err := domain.ValidatePassword(password); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        normalizedEmail,
		PasswordHash: string(hash),
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("bootstrap administrator registered")
	return created, nil
}

// Login verifies the identifier (username or email) and password, and on
// success establishes a session plus a bearer API token. Unknown identifier
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.LoginResult, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// burn a comparison so the miss takes as long as a mismatch
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, token, user.ID, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	apiToken, err := s.generateAPIToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("login succeeded")
	return &ports.LoginResult{SessionToken: token, APIToken: apiToken, User: user}, nil
}

// Authorize resolves a session token to its user.
func (s *AuthService) Authorize(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// Logout destroys the session. Logging out an already-destroyed session is
// not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *AuthService) generateAPIToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(s.sessionTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newSessionToken returns 32 bytes of CSPRNG output, hex encoded.
func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
