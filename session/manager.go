// Package session owns the authenticated/unauthenticated state machine of
// the dashboard. The Manager is constructed once at application start and
// reset only through Bootstrap and Logout; consumers receive it explicitly
// instead of reaching for ambient globals.
package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/MTN-Developers/mtn-academy-dashboard/authapi"
	"github.com/MTN-Developers/mtn-academy-dashboard/internal/apierrors"
	"github.com/MTN-Developers/mtn-academy-dashboard/internal/config"
	"github.com/MTN-Developers/mtn-academy-dashboard/permissions"
	"github.com/MTN-Developers/mtn-academy-dashboard/tokenstore"
)

// AuthAPI is the slice of the auth endpoints the Manager drives.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*authapi.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Me(ctx context.Context) (*authapi.MeResult, error)
	Logout(ctx context.Context) error
}

// State is a point-in-time snapshot of the session. Loading is true only
// during Bootstrap and an in-flight Login; route guards must defer their
// decision while it is set.
type State struct {
	Authenticated bool
	Loading       bool
	User          *tokenstore.Identity
	Role          string
	Permissions   permissions.Set
}

// Manager holds the session state and the two entry points that can change
// it: Bootstrap and Login. Logout always succeeds.
type Manager struct {
	store           tokenstore.Store
	api             AuthAPI
	refreshTimeout  time.Duration
	disallowedRoles []string
	navigate        func(path string)

	lock  sync.RWMutex
	state State
}

// ManagerOption modifies the Manager instance.
type ManagerOption func(*Manager)

// WithNavigator installs the hook fired with the login path when the session
// dies out from under the user (failed refresh).
func WithNavigator(navigate func(path string)) ManagerOption {
	return func(m *Manager) {
		m.navigate = navigate
	}
}

// NewManager initialises a session Manager with required dependencies.
func NewManager(store tokenstore.Store, api AuthAPI, cfg config.SessionConfig, options ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[NewManager] token store is required")
	}
	if api == nil {
		return nil, errors.New("[NewManager] auth API client is required")
	}
	if cfg == nil {
		return nil, errors.New("[NewManager] session config is required")
	}

	m := &Manager{
		store:           store,
		api:             api,
		refreshTimeout:  cfg.GetRefreshTimeout(),
		disallowedRoles: cfg.GetDisallowedRoles(),
		state:           State{Loading: true},
	}

	for _, opt := range options {
		opt(m)
	}

	return m, nil
}

// Bootstrap attempts a silent login from the stored refresh token. It always
// ends with Loading false; a missing or rejected refresh token simply leaves
// the session unauthenticated. The returned error is informational only.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.setLoading(true)

	tokens := m.store.Get()
	if tokens.RefreshToken == "" {
		m.becomeUnauthenticated()
		return nil
	}

	rctx, cancel := context.WithTimeout(ctx, m.refreshTimeout)
	defer cancel()

	accessToken, err := m.api.Refresh(rctx, tokens.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("Bootstrap refresh rejected, starting unauthenticated")
		m.becomeUnauthenticated()
		return errors.Wrap(err, "[Manager.Bootstrap] Refresh")
	}

	// The refresh endpoint does not reissue the refresh token.
	if err := m.store.Set(tokenstore.Tokens{AccessToken: accessToken, RefreshToken: tokens.RefreshToken}); err != nil {
		m.becomeUnauthenticated()
		return errors.Wrap(err, "[Manager.Bootstrap] store.Set")
	}

	// Identity can be read off the token; authorization data cannot, the
	// claims carry no freshness guarantee. Permissions come from the server.
	user, err := tokenstore.DecodeIdentity(accessToken)
	if err != nil {
		m.becomeUnauthenticated()
		return errors.Wrap(err, "[Manager.Bootstrap] DecodeIdentity")
	}

	me, err := m.api.Me(ctx)
	if err != nil {
		m.becomeUnauthenticated()
		return errors.Wrap(err, "[Manager.Bootstrap] Me")
	}

	set, err := permissions.NewSet(me.Role.Permissions)
	if err != nil {
		m.becomeUnauthenticated()
		return errors.Wrap(err, "[Manager.Bootstrap] NewSet")
	}

	m.lock.Lock()
	m.state = State{
		Authenticated: true,
		User:          user,
		Role:          me.Role.RoleName,
		Permissions:   set,
	}
	m.lock.Unlock()

	log.Info().Str("user_id", user.ID).Str("role", me.Role.RoleName).Msg("Session restored from refresh token")
	return nil
}

// Login authenticates with the remote API. Failures, including a disallowed
// role on an otherwise successful HTTP call, leave the state unchanged and
// persist nothing.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.setLoading(true)
	defer m.setLoading(false)

	result, err := m.api.Login(ctx, email, password)
	if err != nil {
		return errors.Wrap(err, "[Manager.Login]")
	}

	if slices.Contains(m.disallowedRoles, result.User.Role) {
		log.Warn().Str("role", result.User.Role).Str("email", email).Msg("Login rejected, role barred from admin surface")
		return errors.Wrap(apierrors.ErrRoleNotAllowed, "[Manager.Login]")
	}

	set, err := permissions.NewSet(result.Role.Permissions)
	if err != nil {
		return errors.Wrap(err, "[Manager.Login]")
	}

	if err := m.store.Set(tokenstore.Tokens{AccessToken: result.AccessToken, RefreshToken: result.RefreshToken}); err != nil {
		return errors.Wrap(err, "[Manager.Login] store.Set")
	}

	user := result.User
	m.lock.Lock()
	m.state = State{
		Authenticated: true,
		User:          &user,
		Role:          result.Role.RoleName,
		Permissions:   set,
	}
	m.lock.Unlock()

	log.Info().Str("user_id", user.ID).Str("role", result.Role.RoleName).Msg("Login succeeded")
	return nil
}

// Logout tears the session down. The token store is cleared synchronously;
// the server call is fire and forget, a logout never fails for the caller.
func (m *Manager) Logout() {
	m.becomeUnauthenticated()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.api.Logout(ctx)
	}()
}

// HandleSessionExpired is the gateway's hook for a terminal refresh failure.
// The gateway has already cleared the token store; the session state follows
// and the user is sent back to the login entry point.
func (m *Manager) HandleSessionExpired() {
	m.becomeUnauthenticated()
	if m.navigate != nil {
		m.navigate("/login")
	}
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() State {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.state
}

// Can answers "may this session perform action on module". Unauthenticated
// sessions hold no permissions.
func (m *Manager) Can(module string, action permissions.Action) bool {
	return m.Snapshot().Permissions.Can(module, action)
}

// CanAny reports whether the session holds any capability for the module.
func (m *Manager) CanAny(module string) bool {
	return m.Snapshot().Permissions.CanAny(module)
}

func (m *Manager) setLoading(loading bool) {
	m.lock.Lock()
	m.state.Loading = loading
	m.lock.Unlock()
}

func (m *Manager) becomeUnauthenticated() {
	if err := m.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("Failed to clear token store")
	}
	m.lock.Lock()
	m.state = State{}
	m.lock.Unlock()
}
