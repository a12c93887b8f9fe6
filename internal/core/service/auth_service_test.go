package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/flowcrm/customer-system/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubSessionStore struct {
	sessions map[string]string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]string)}
}

func (s *stubSessionStore) Save(_ context.Context, token, userID string, _ time.Duration) error {
	s.sessions[token] = userID
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, token string) (string, error) {
	if userID, ok := s.sessions[token]; ok {
		return userID, nil
	}
	return "", domain.ErrSessionNotFound
}

func (s *stubSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func newTestAuthService(opts ...AuthOption) (*AuthService, *stubUserRepo, *stubSessionStore) {
	repo := newStubUserRepo()
	sessions := newStubSessionStore()
	svc := NewAuthService(repo, sessions, "secret", time.Hour, zerolog.Nop(), opts...)
	return svc, repo, sessions
}

func TestAuthService_Register_FirstUserBecomesAdmin(t *testing.T) {
	svc, _, _ := newTestAuthService()

	open, err := svc.CanRegister(context.Background())
	if err != nil || !open {
		t.Fatalf("expected registration open, got open=%v err=%v", open, err)
	}

	user, err := svc.Register(context.Background(), "alice", "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if !user.IsAdmin {
		t.Fatalf("first user must be admin")
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_ClosesForever(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), "alice", "alice@x.com", "pw1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		open, err := svc.CanRegister(context.Background())
		if err != nil {
			t.Fatalf("CanRegister error: %v", err)
		}
		if open {
			t.Fatalf("registration must stay closed")
		}
		if _, err := svc.Register(context.Background(), "bob", "bob@y.com", "Pw2!abc"); !errors.Is(err, domain.ErrRegistrationClosed) {
			t.Fatalf("expected ErrRegistrationClosed, got %v", err)
		}
	}
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), "alice", "not-an-email", "pw1")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "email" {
		t.Fatalf("expected email validation error, got %v", err)
	}
}

func TestAuthService_Register_StrictPasswordPolicy(t *testing.T) {
	svc, _, _ := newTestAuthService(WithStrictPasswords())

	_, err := svc.Register(context.Background(), "alice", "alice@x.com", "pw1")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "password" {
		t.Fatalf("expected password validation error, got %v", err)
	}

	if _, err := svc.Register(context.Background(), "alice", "alice@x.com", "Str0ng!pw"); err != nil {
		t.Fatalf("strong password rejected: %v", err)
	}
}

func TestAuthService_Login_ByUsernameAndEmail(t *testing.T) {
	svc, _, sessions := newTestAuthService()

	if _, err := svc.Register(context.Background(), "alice", "alice@x.com", "pw1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, identifier := range []string{"alice", "alice@x.com"} {
		result, err := svc.Login(context.Background(), identifier, "pw1")
		if err != nil {
			t.Fatalf("login with %q failed: %v", identifier, err)
		}
		if result.SessionToken == "" {
			t.Fatalf("expected session token")
		}
		if _, ok := sessions.sessions[result.SessionToken]; !ok {
			t.Fatalf("session not persisted")
		}

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(result.APIToken, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("secret"), nil
		})
		if err != nil || !parsed.Valid {
			t.Fatalf("api token invalid: %v", err)
		}
		if claims["is_admin"] != true {
			t.Fatalf("expected is_admin claim, got %v", claims["is_admin"])
		}
	}
}

func TestAuthService_Login_IdenticalErrorForBothFailures(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), "alice", "alice@x.com", "pw1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPassword := svc.Login(context.Background(), "alice", "nope")
	_, unknownUser := svc.Login(context.Background(), "ghost", "nope")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if wrongPassword != unknownUser {
		t.Fatalf("both failure modes must return the identical error, got %v and %v", wrongPassword, unknownUser)
	}
}

func TestAuthService_Authorize(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), "alice", "alice@x.com", "pw1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	result, err := svc.Login(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	user, err := svc.Authorize(context.Background(), result.SessionToken)
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Authorize(context.Background(), "bogus"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Authorize(context.Background(), ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for empty token, got %v", err)
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), "alice", "alice@x.com", "pw1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	result, err := svc.Login(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), result.SessionToken); err != nil {
		t.Fatalf("first logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), result.SessionToken); err != nil {
		t.Fatalf("second logout must not error: %v", err)
	}

	if _, err := svc.Authorize(context.Background(), result.SessionToken); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("session should be destroyed, got %v", err)
	}
}
