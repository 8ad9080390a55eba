package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olejniktut/dc-landscaping/internal/domain"
	"github.com/olejniktut/dc-landscaping/internal/gateway"
	"github.com/olejniktut/dc-landscaping/pkg/logger"
)

// mockAuthGateway implements AuthGateway
type mockAuthGateway struct {
	loginCalls int
	meCalls    int
	token      string
	loginErr   error
	user       *domain.User
	meErr      error
}

func (m *mockAuthGateway) Login(ctx context.Context, username, password string) (string, error) {
	m.loginCalls++
	if m.loginErr != nil {
		return "", m.loginErr
	}
	return m.token, nil
}

func (m *mockAuthGateway) GetMe(ctx context.Context) (*domain.User, error) {
	m.meCalls++
	if m.meErr != nil {
		return nil, m.meErr
	}
	return m.user, nil
}

// memStore implements storage.Store in memory
type memStore struct {
	token       string
	user        *domain.User
	lastWorkers []int64
}

func (s *memStore) SaveToken(token string) error { s.token = token; return nil }

func (s *memStore) Token() (string, bool) { return s.token, s.token != "" }

func (s *memStore) SaveUser(user *domain.User) error { s.user = user; return nil }

func (s *memStore) User() *domain.User { return s.user }

func (s *memStore) ClearSession() error { s.token = ""; s.user = nil; return nil }

func (s *memStore) SaveLastWorkers(ids []int64) error { s.lastWorkers = ids; return nil }

func (s *memStore) LastWorkers() []int64 { return s.lastWorkers }

func adminUser() *domain.User {
	return &domain.User{ID: 1, Username: "boss", Role: domain.RoleAdmin, IsActive: true}
}

func workerUser() *domain.User {
	return &domain.User{ID: 2, Username: "bob", Role: domain.RoleWorker, IsActive: true}
}

func TestManager_LoginSuccess(t *testing.T) {
	gw := &mockAuthGateway{token: "tok-1", user: workerUser()}
	store := &memStore{}
	m := NewManager(gw, store, logger.NewNop())

	result := m.Login(context.Background(), "bob", "secret")
	require.True(t, result.Success)

	assert.True(t, m.IsAuthenticated())
	assert.False(t, m.IsAdmin())
	require.NotNil(t, m.User())
	assert.Equal(t, "bob", m.User().Username)

	// Both halves are durable before the call returns
	assert.Equal(t, "tok-1", store.token)
	require.NotNil(t, store.user)
	assert.Equal(t, "bob", store.user.Username)
}

func TestManager_LoginRejectedLeavesStateUntouched(t *testing.T) {
	gw := &mockAuthGateway{
		loginErr: errors.Join(domain.ErrInvalidCredentials,
			&gateway.APIError{StatusCode: 401, Detail: "Incorrect username or password"}),
	}
	store := &memStore{token: "old-token", user: workerUser()}
	m := NewManager(gw, store, logger.NewNop())

	result := m.Login(context.Background(), "bob", "wrong")
	assert.False(t, result.Success)
	assert.Equal(t, "Incorrect username or password", result.Error)

	// The prior session survives a failed login
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "old-token", store.token)
	require.NotNil(t, m.User())
	assert.Equal(t, "bob", m.User().Username)
}

func TestManager_LoginNetworkFailureUsesFallbackMessage(t *testing.T) {
	gw := &mockAuthGateway{loginErr: domain.ErrNetwork}
	m := NewManager(gw, &memStore{}, logger.NewNop())

	result := m.Login(context.Background(), "bob", "secret")
	assert.False(t, result.Success)
	assert.Equal(t, "Login failed", result.Error)
	assert.False(t, m.IsAuthenticated())
}

func TestManager_LoginProfileFetchFailureKeepsToken(t *testing.T) {
	gw := &mockAuthGateway{token: "tok-2", meErr: domain.ErrNetwork}
	store := &memStore{}
	m := NewManager(gw, store, logger.NewNop())

	result := m.Login(context.Background(), "bob", "secret")
	assert.False(t, result.Success)

	// Token installed and persisted; profile absent
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "tok-2", store.token)
	assert.Nil(t, m.User())
	assert.False(t, m.IsAdmin())
}

func TestManager_Logout(t *testing.T) {
	gw := &mockAuthGateway{token: "tok", user: workerUser()}
	store := &memStore{}
	m := NewManager(gw, store, logger.NewNop())
	require.True(t, m.Login(context.Background(), "bob", "secret").Success)

	notified := 0
	m.OnLogout(func() { notified++ })

	m.Logout()
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.User())
	assert.Empty(t, store.token)
	assert.Nil(t, store.user)
	assert.Equal(t, 1, notified)

	// Idempotent
	m.Logout()
	assert.False(t, m.IsAuthenticated())
	assert.Equal(t, 2, notified)
}

func TestManager_CheckAuthWithoutToken(t *testing.T) {
	gw := &mockAuthGateway{}
	m := NewManager(gw, &memStore{}, logger.NewNop())

	assert.False(t, m.CheckAuth(context.Background()))
	assert.Equal(t, 0, gw.meCalls, "no token means no network call")
}

func TestManager_CheckAuthRefreshesProfile(t *testing.T) {
	gw := &mockAuthGateway{user: adminUser()}
	store := &memStore{token: "tok", user: workerUser()}
	m := NewManager(gw, store, logger.NewNop())

	assert.True(t, m.CheckAuth(context.Background()))
	assert.True(t, m.IsAdmin())
	require.NotNil(t, store.user)
	assert.Equal(t, "boss", store.user.Username)
}

func TestManager_CheckAuthFailureClearsEverything(t *testing.T) {
	gw := &mockAuthGateway{meErr: domain.ErrSessionExpired}
	store := &memStore{token: "stale", user: workerUser()}
	m := NewManager(gw, store, logger.NewNop())

	notified := 0
	m.OnLogout(func() { notified++ })

	assert.False(t, m.CheckAuth(context.Background()))
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.User())
	assert.Empty(t, store.token)
	assert.Nil(t, store.user)
	assert.Equal(t, 1, notified)
}

func TestManager_RestoreFromStore(t *testing.T) {
	store := &memStore{token: "persisted", user: adminUser()}
	m := NewManager(&mockAuthGateway{}, store, logger.NewNop())

	assert.True(t, m.IsAuthenticated())
	assert.True(t, m.IsAdmin())
}

func TestManager_RestoreIgnoresUserWithoutToken(t *testing.T) {
	store := &memStore{user: adminUser()}
	m := NewManager(&mockAuthGateway{}, store, logger.NewNop())

	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.User(), "profile without a token violates the session invariant")
	assert.False(t, m.IsAdmin())
}

func TestManager_ExpiresAt(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "bob",
		"role": "worker",
		"exp":  exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	m := NewManager(&mockAuthGateway{}, &memStore{token: signed}, logger.NewNop())
	got, ok := m.ExpiresAt()
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}

func TestManager_ExpiresAtOpaqueToken(t *testing.T) {
	m := NewManager(&mockAuthGateway{}, &memStore{token: "not-a-jwt"}, logger.NewNop())
	_, ok := m.ExpiresAt()
	assert.False(t, ok)
}
