package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/mesto/internal/client/client"
	"github.com/dmitrijs2005/mesto/internal/client/models"
	"github.com/dmitrijs2005/mesto/internal/client/observe"
	"github.com/dmitrijs2005/mesto/internal/client/overlay"
	"github.com/dmitrijs2005/mesto/internal/client/route"
	"github.com/dmitrijs2005/mesto/internal/common"
	"github.com/dmitrijs2005/mesto/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// TokenStore is the persisted key-value store holding the session token.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Replace(ctx context.Context, key string, value string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

// Navigator moves the client to a route; the returned route is where it
// actually landed.
type Navigator interface {
	Navigate(to route.Route) route.Route
}

// OverlayOpener shows an overlay, replacing whatever is open.
type OverlayOpener interface {
	Open(s overlay.State)
}

// SessionManager owns the session token and the login state derived from it.
type SessionManager struct {
	auth     client.AuthAPI
	store    TokenStore
	nav      Navigator
	overlays OverlayOpener
	log      logging.Logger
	now      func() time.Time

	restoreOnce sync.Once
	mu          sync.Mutex
	token       string

	// publish pairs every token change with the session it produces.
	publish sync.Mutex

	session *observe.Value[models.Session]
}

func NewSessionManager(auth client.AuthAPI, store TokenStore, nav Navigator, overlays OverlayOpener, log logging.Logger) *SessionManager {
	return &SessionManager{
		auth:     auth,
		store:    store,
		nav:      nav,
		overlays: overlays,
		log:      log,
		now:      time.Now,
		session:  observe.NewValue(models.Session{}),
	}
}

// Restore loads the persisted token into memory. Only the first call reads
// the store.
func (m *SessionManager) Restore(ctx context.Context) {
	m.restoreOnce.Do(func() {
		token, ok, err := m.store.Get(ctx, common.TokenStorageKey)
		if err != nil {
			m.log.Warn(ctx, "failed to read stored session token", "op", "restore", "err", err)
			return
		}
		if !ok {
			return
		}
		m.mu.Lock()
		m.token = token
		m.mu.Unlock()
	})
}

// Token returns the in-memory token, which may not have been validated yet.
func (m *SessionManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *SessionManager) Session() models.Session {
	return m.session.Get()
}

// Subscribe registers fn for session changes. fn must not sign in or out.
func (m *SessionManager) Subscribe(fn func(models.Session)) (unsubscribe func()) {
	return m.session.Subscribe(fn)
}

// Bootstrap turns the persisted token into a session. Without a token it
// does nothing. A token that is expired or rejected by the auth service is
// discarded and the session stays logged out.
func (m *SessionManager) Bootstrap(ctx context.Context) error {
	m.Restore(ctx)

	token := m.Token()
	if token == "" {
		return nil
	}

	if err := m.checkExpiry(token); err != nil {
		m.log.Warn(ctx, "stored session token discarded", "op", "bootstrap", "err", err)
		m.discard(ctx, token)
		return err
	}

	email, err := m.auth.ValidateToken(ctx, token)
	if err != nil {
		m.log.Warn(ctx, "stored session token rejected", "op", "bootstrap", "err", err)
		m.discard(ctx, token)
		return err
	}

	m.publish.Lock()
	if m.Token() != token {
		m.publish.Unlock()
		m.log.Debug(ctx, "session changed during token validation", "op", "bootstrap")
		return nil
	}
	m.session.Set(models.Session{Token: token, Email: email, IsLoggedIn: true})
	m.publish.Unlock()

	m.nav.Navigate(route.Home)
	return nil
}

// checkExpiry rejects a JWT whose exp claim has passed. Tokens that do not
// parse as JWT are left for the auth service to judge.
func (m *SessionManager) checkExpiry(token string) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if exp != nil && !m.now().Before(exp.Time) {
		return common.ErrTokenExpired
	}
	return nil
}

// discard drops token from memory and the store unless a newer token has
// replaced it meanwhile.
func (m *SessionManager) discard(ctx context.Context, token string) {
	m.mu.Lock()
	if m.token != token {
		m.mu.Unlock()
		return
	}
	m.token = ""
	m.mu.Unlock()

	if err := m.store.Delete(ctx, common.TokenStorageKey); err != nil {
		m.log.Error(ctx, "failed to delete stored session token", "op", "discard", "err", err)
	}
}

// Register creates an account. The outcome is shown as an auth tooltip; on
// success the client moves to sign-in.
func (m *SessionManager) Register(ctx context.Context, email string, password []byte) error {
	if err := m.auth.Register(ctx, email, password); err != nil {
		m.log.Error(ctx, "registration failed", "op", "register", "email", email, "err", err)
		m.overlays.Open(overlay.AuthTooltip(overlay.StatusFail))
		return err
	}

	m.overlays.Open(overlay.AuthTooltip(overlay.StatusSuccess))
	m.nav.Navigate(route.SignIn)
	return nil
}

// Login exchanges credentials for a token, persists it and logs the user in.
// Failing to persist the token does not fail the login.
func (m *SessionManager) Login(ctx context.Context, email string, password []byte) error {
	token, err := m.auth.Login(ctx, email, password)
	if err != nil {
		m.log.Error(ctx, "login failed", "op", "login", "email", email, "err", err)
		m.overlays.Open(overlay.AuthTooltip(overlay.StatusFail))
		return err
	}

	prev, existed, err := m.store.Replace(ctx, common.TokenStorageKey, token)
	switch {
	case err != nil:
		m.log.Warn(ctx, "session token not persisted", "op", "login", "err", err)
	case existed && prev != token:
		m.log.Debug(ctx, "replaced stored session token", "op", "login")
	}

	m.publish.Lock()
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	m.session.Set(models.Session{Token: token, Email: email, IsLoggedIn: true})
	m.publish.Unlock()

	m.nav.Navigate(route.Home)
	return nil
}

// SignOut forgets the token and moves to sign-in. It never calls the server
// and a store failure is only logged.
func (m *SessionManager) SignOut(ctx context.Context) {
	m.publish.Lock()
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()

	if err := m.store.Delete(ctx, common.TokenStorageKey); err != nil {
		m.log.Error(ctx, "failed to delete stored session token", "op", "sign out", "err", err)
	}

	m.session.Set(models.Session{})
	m.publish.Unlock()

	m.nav.Navigate(route.SignIn)
}
