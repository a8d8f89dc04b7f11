package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/praceando/event-platform/internal/auth"
	"github.com/praceando/event-platform/internal/config"
	"github.com/praceando/event-platform/internal/domain"
	"github.com/praceando/event-platform/internal/events"
	"github.com/praceando/event-platform/internal/repository"
)

// ErrInvalidCredentials is returned for unknown email and wrong password
// alike; callers must not tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrTokenSigning marks a failure inside token issuance itself, as opposed
// to credential store errors, which pass through unwrapped.
var ErrTokenSigning = errors.New("token signing failed")

// Digest compared when the email lookup misses, so absent accounts cost the
// same bcrypt work as wrong passwords.
const dummyDigest = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// AuthService coordinates the login flow: credential verification against
// the store and signed-token issuance.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMinutes),
		dispatcher: deps.Dispatcher,
	}
}

// Login authenticates the credentials and issues a signed token carrying the
// user's current role. Returns ErrInvalidCredentials on any credential
// mismatch; other errors are store or signing failures.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			_ = auth.ComparePassword(dummyDigest, password)
			s.publish(ctx, events.EventLoginRejected, email, events.LoginRejectedPayload{Reason: "unknown email"})
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}

	if user.Status != domain.UserStatusActive {
		s.publish(ctx, events.EventLoginRejected, email, events.LoginRejectedPayload{Reason: "account suspended"})
		return "", time.Time{}, ErrInvalidCredentials
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.publish(ctx, events.EventLoginRejected, email, events.LoginRejectedPayload{Reason: "wrong password"})
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.Email, user.Role)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrTokenSigning, err)
	}

	s.publish(ctx, events.EventLoginSucceeded, user.Email, events.LoginSucceededPayload{
		Role:      user.Role,
		ExpiresAt: expiresAt,
	})
	return token, expiresAt, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subject string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
