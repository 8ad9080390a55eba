// Package session owns the authentication token and user profile, persists
// them for reload survival, and is the single recovery path for credential
// expiry.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/olejniktut/dc-landscaping/internal/domain"
	"github.com/olejniktut/dc-landscaping/internal/gateway"
	"github.com/olejniktut/dc-landscaping/internal/storage"
	"github.com/olejniktut/dc-landscaping/pkg/logger"
)

const loginFallbackMessage = "Login failed"

// AuthGateway is the slice of the backend the session manager needs
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (string, error)
	GetMe(ctx context.Context) (*domain.User, error)
}

// Manager holds the current session. Invariant: user is never set while the
// token is absent.
type Manager struct {
	mu       sync.RWMutex
	token    string
	user     *domain.User
	gw       AuthGateway
	store    storage.Store
	log      *logger.Logger
	onLogout []func()
}

// NewManager restores any persisted session from the store
func NewManager(gw AuthGateway, store storage.Store, log *logger.Logger) *Manager {
	m := &Manager{gw: gw, store: store, log: log}
	if token, ok := store.Token(); ok {
		m.token = token
		m.user = store.User()
		m.log.Debug("session restored", zap.Bool("has_profile", m.user != nil))
	}
	return m
}

// OnLogout registers fn to run whenever the session is cleared, whether by
// an explicit logout or by forced invalidation. Used to tear down the timer.
func (m *Manager) OnLogout(fn func()) {
	m.mu.Lock()
	m.onLogout = append(m.onLogout, fn)
	m.mu.Unlock()
}

// Login authenticates and installs the session. The token call and the
// profile fetch are separate steps: if the profile fetch fails after the
// token was issued, the token stays installed and persisted, the profile
// stays absent, and a failure result is returned. The next CheckAuth either
// completes the profile or tears the session down.
func (m *Manager) Login(ctx context.Context, username, password string) domain.Result {
	token, err := m.gw.Login(ctx, username, password)
	if err != nil {
		m.log.Warn("login rejected", zap.String("username", username), zap.Error(err))
		return domain.Fail(failureMessage(err))
	}

	// Durable write first so a reload cannot observe a token the store
	// doesn't have.
	if err := m.store.SaveToken(token); err != nil {
		m.log.Error("persist token", zap.Error(err))
		return domain.Fail(loginFallbackMessage)
	}
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	user, err := m.gw.GetMe(ctx)
	if err != nil {
		m.log.Warn("profile fetch after login failed", zap.Error(err))
		return domain.Fail(failureMessage(err))
	}
	if err := m.store.SaveUser(user); err != nil {
		m.log.Error("persist user", zap.Error(err))
		return domain.Fail(loginFallbackMessage)
	}
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.log.Info("logged in", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	return domain.OK()
}

// Logout clears the session and its durable copies. No network call, always
// succeeds, idempotent.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	listeners := make([]func(), len(m.onLogout))
	copy(listeners, m.onLogout)
	m.mu.Unlock()

	if err := m.store.ClearSession(); err != nil {
		m.log.Warn("clear persisted session", zap.Error(err))
	}
	for _, fn := range listeners {
		fn()
	}
}

// Invalidate is the forced-logout path taken when an authenticated call
// reports the credential invalid
func (m *Manager) Invalidate() {
	m.log.Info("session invalidated")
	m.Logout()
}

// CheckAuth validates the current token against the backend. Without a token
// it returns false with no network call. Any failure, auth or network, tears
// the session down; the two are not distinguished here.
func (m *Manager) CheckAuth(ctx context.Context) bool {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()
	if token == "" {
		return false
	}

	user, err := m.gw.GetMe(ctx)
	if err != nil {
		m.log.Info("session check failed", zap.Error(err))
		m.Logout()
		return false
	}

	if err := m.store.SaveUser(user); err != nil {
		m.log.Warn("persist user", zap.Error(err))
	}
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return true
}

// IsAuthenticated reports whether a token is installed
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != ""
}

// IsAdmin reports whether the validated profile holds the admin role
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.IsAdmin()
}

// User returns a copy of the current profile, or nil
func (m *Manager) User() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// ExpiresAt reads the expiry claim out of the bearer token without verifying
// it. Display and logging only; authorization decisions always go through
// the backend.
func (m *Manager) ExpiresAt() (time.Time, bool) {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// failureMessage converts a gateway error into the user-facing reason
func failureMessage(err error) string {
	if err == nil {
		return ""
	}
	return gateway.ErrorDetail(err, loginFallbackMessage)
}
