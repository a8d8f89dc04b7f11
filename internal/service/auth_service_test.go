package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praceando/event-platform/internal/auth"
	"github.com/praceando/event-platform/internal/config"
	"github.com/praceando/event-platform/internal/domain"
	"github.com/praceando/event-platform/internal/events"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := f.users[strings.ToLower(email)]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, err := f.GetByID(ctx, id)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

type failingUserRepo struct {
	err error
}

func (f *failingUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, f.err
}

func (f *failingUserRepo) GetByID(context.Context, int64) (*domain.User, error) {
	return nil, f.err
}

func (f *failingUserRepo) ExistsByEmail(context.Context, string) (bool, error) {
	return false, f.err
}

func (f *failingUserRepo) ExistsByID(context.Context, int64) (bool, error) {
	return false, f.err
}

type recordingDispatcher struct {
	published []events.Event
}

func (r *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	r.published = append(r.published, event)
	return nil
}

func (r *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (r *recordingDispatcher) typesSeen() []events.EventType {
	out := make([]events.EventType, 0, len(r.published))
	for _, event := range r.published {
		out = append(out, event.Type)
	}
	return out
}

func newTestAuthService(t *testing.T, repo *fakeUserRepo, dispatcher events.Dispatcher) *AuthService {
	t.Helper()
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "service-test-secret"
	cfg.Auth.TokenTTLMinutes = 24 * 60
	return NewAuthService(cfg, AuthDependencies{UserRepo: repo, Dispatcher: dispatcher})
}

func seedUser(t *testing.T, email, password string, role domain.RoleName, status domain.UserStatus) *domain.User {
	t.Helper()
	digest, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	return &domain.User{
		ID:           1,
		Name:         "Camilla",
		Email:        email,
		PasswordHash: digest,
		Role:         role,
		Status:       status,
	}
}

func TestLoginIssuesTokenWithCurrentRole(t *testing.T) {
	user := seedUser(t, "camis.linda@example.com", "Senha123@", domain.RoleConsumer, domain.UserStatusActive)
	repo := &fakeUserRepo{users: map[string]*domain.User{user.Email: user}}
	dispatcher := &recordingDispatcher{}
	svc := newTestAuthService(t, repo, dispatcher)

	token, expiresAt, err := svc.Login(context.Background(), user.Email, "Senha123@")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, claims.Subject)
	assert.Equal(t, domain.RoleConsumer, claims.Role)

	assert.Equal(t, []events.EventType{events.EventLoginSucceeded}, dispatcher.typesSeen())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	user := seedUser(t, "camis.linda@example.com", "Senha123@", domain.RoleConsumer, domain.UserStatusActive)
	repo := &fakeUserRepo{users: map[string]*domain.User{user.Email: user}}
	svc := newTestAuthService(t, repo, &recordingDispatcher{})

	_, _, wrongPassword := svc.Login(context.Background(), user.Email, "Errada123@")
	_, _, unknownEmail := svc.Login(context.Background(), "ninguem@example.com", "Senha123@")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestLoginRejectsSuspendedAccount(t *testing.T) {
	user := seedUser(t, "camis.linda@example.com", "Senha123@", domain.RoleConsumer, domain.UserStatusSuspended)
	repo := &fakeUserRepo{users: map[string]*domain.User{user.Email: user}}
	dispatcher := &recordingDispatcher{}
	svc := newTestAuthService(t, repo, dispatcher)

	_, _, err := svc.Login(context.Background(), user.Email, "Senha123@")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, []events.EventType{events.EventLoginRejected}, dispatcher.typesSeen())
}

func TestLoginPassesStoreFailuresThrough(t *testing.T) {
	storeErr := errors.New("connection refused")
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "service-test-secret"
	cfg.Auth.TokenTTLMinutes = 24 * 60
	svc := NewAuthService(cfg, AuthDependencies{
		UserRepo:   &failingUserRepo{err: storeErr},
		Dispatcher: &recordingDispatcher{},
	})

	_, _, err := svc.Login(context.Background(), "camis.linda@example.com", "Senha123@")
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrTokenSigning)
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	user := seedUser(t, "camis.linda@example.com", "Senha123@", domain.RoleConsumerPremium, domain.UserStatusActive)
	repo := &fakeUserRepo{users: map[string]*domain.User{user.Email: user}}
	svc := newTestAuthService(t, repo, &recordingDispatcher{})

	_, _, err := svc.Login(context.Background(), "Camis.Linda@Example.COM", "Senha123@")
	assert.NoError(t, err)
}
