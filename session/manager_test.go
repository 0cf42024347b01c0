package session_test

import (
	"context"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/MTN-Developers/mtn-academy-dashboard/authapi"
	"github.com/MTN-Developers/mtn-academy-dashboard/internal/apierrors"
	"github.com/MTN-Developers/mtn-academy-dashboard/permissions"
	"github.com/MTN-Developers/mtn-academy-dashboard/session"
	"github.com/MTN-Developers/mtn-academy-dashboard/session/authapifakes"
	"github.com/MTN-Developers/mtn-academy-dashboard/tokenstore"
	"github.com/MTN-Developers/mtn-academy-dashboard/tokenstore/storefakes"
)

const (
	testUserID    = "user-1"
	testUserEmail = "admin@x.com"
	testUserName  = "Admin One"
	testRoleID    = "role-1"
)

type testConfig struct{}

func (testConfig) GetRefreshTimeout() time.Duration { return 2 * time.Second }
func (testConfig) GetDisallowedRoles() []string     { return []string{"user"} }

// testFixture holds all test dependencies
type testFixture struct {
	store   *storefakes.FakeStore
	api     *authapifakes.FakeAuthAPI
	manager *session.Manager

	navigatedTo string
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		store: storefakes.NewFakeStore(),
		api:   authapifakes.NewFakeAuthAPI(),
	}

	manager, err := session.NewManager(f.store, f.api, testConfig{},
		session.WithNavigator(func(path string) { f.navigatedTo = path }))
	require.NoError(t, err)
	f.manager = manager
	return f
}

func signedTestToken(t *testing.T, role string) string {
	t.Helper()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub":     testUserID,
		"name":    testUserName,
		"email":   testUserEmail,
		"role":    role,
		"role_id": testRoleID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func adminLoginResult(t *testing.T) *authapi.LoginResult {
	t.Helper()
	return &authapi.LoginResult{
		AccessToken:  signedTestToken(t, "admin"),
		RefreshToken: "R1",
		User: tokenstore.Identity{
			ID: testUserID, Name: testUserName, Email: testUserEmail, Role: "admin", RoleID: testRoleID,
		},
		Role: authapi.RoleWithPermissions{
			RoleName: "admin",
			Permissions: []permissions.Permission{
				{Module: "user", CanRead: true},
			},
		},
	}
}

func TestNewManagerRequiresDependencies(t *testing.T) {
	_, err := session.NewManager(nil, authapifakes.NewFakeAuthAPI(), testConfig{})
	require.Error(t, err)

	_, err = session.NewManager(storefakes.NewFakeStore(), nil, testConfig{})
	require.Error(t, err)

	_, err = session.NewManager(storefakes.NewFakeStore(), authapifakes.NewFakeAuthAPI(), nil)
	require.Error(t, err)
}

func TestInitialStateIsBootstrapping(t *testing.T) {
	f := setupTestFixture(t)

	state := f.manager.Snapshot()
	require.True(t, state.Loading)
	require.False(t, state.Authenticated)
}

func TestBootstrapWithoutRefreshTokenEndsUnauthenticated(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.manager.Bootstrap(context.Background()))

	state := f.manager.Snapshot()
	require.False(t, state.Loading)
	require.False(t, state.Authenticated)
	require.Zero(t, f.api.RefreshCalls)
}

func TestBootstrapWithValidRefreshToken(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.store.Set(tokenstore.Tokens{AccessToken: "stale", RefreshToken: "R1"}))

	f.api.RefreshAccessToken = signedTestToken(t, "admin")
	f.api.MeResult = &authapi.MeResult{
		User: tokenstore.Identity{ID: testUserID, Role: "admin"},
		Role: authapi.RoleWithPermissions{
			RoleName:    "admin",
			Permissions: []permissions.Permission{{Module: "course", CanRead: true, CanCreate: true}},
		},
	}

	require.NoError(t, f.manager.Bootstrap(context.Background()))

	state := f.manager.Snapshot()
	require.False(t, state.Loading)
	require.True(t, state.Authenticated)
	require.Equal(t, 1, f.api.RefreshCalls)
	require.NotNil(t, state.User)
	require.Equal(t, testUserID, state.User.ID)
	require.Equal(t, "admin", state.Role)
	require.True(t, state.Permissions.Can("course", permissions.ActionRead))

	tokens := f.store.Get()
	require.Equal(t, f.api.RefreshAccessToken, tokens.AccessToken)
	require.Equal(t, "R1", tokens.RefreshToken)
}

func TestBootstrapWithRejectedRefreshTokenClearsTokens(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, f.store.Set(tokenstore.Tokens{AccessToken: "stale", RefreshToken: "dead"}))
	f.api.RefreshErr = apierrors.ErrRefreshFailed

	err := f.manager.Bootstrap(context.Background())
	require.Error(t, err)

	state := f.manager.Snapshot()
	require.False(t, state.Loading)
	require.False(t, state.Authenticated)
	require.True(t, f.store.Get().IsZero())
}

func TestLoginSuccess(t *testing.T) {
	f := setupTestFixture(t)
	f.api.LoginResult = adminLoginResult(t)

	require.NoError(t, f.manager.Login(context.Background(), testUserEmail, "correct"))

	state := f.manager.Snapshot()
	require.True(t, state.Authenticated)
	require.False(t, state.Loading)
	require.Equal(t, "admin", state.Role)
	require.True(t, f.manager.Can("user", permissions.ActionRead))
	require.False(t, f.manager.Can("user", permissions.ActionDelete))

	tokens := f.store.Get()
	require.Equal(t, f.api.LoginResult.AccessToken, tokens.AccessToken)
	require.Equal(t, "R1", tokens.RefreshToken)
}

func TestLoginInvalidCredentialsLeavesStateUnchanged(t *testing.T) {
	f := setupTestFixture(t)
	f.api.LoginErr = apierrors.ErrInvalidCredentials

	err := f.manager.Login(context.Background(), testUserEmail, "wrong")
	require.ErrorIs(t, err, apierrors.ErrInvalidCredentials)

	state := f.manager.Snapshot()
	require.False(t, state.Authenticated)
	require.False(t, state.Loading)
	require.True(t, f.store.Get().IsZero())
}

func TestLoginDisallowedRolePersistsNothing(t *testing.T) {
	f := setupTestFixture(t)
	result := adminLoginResult(t)
	result.User.Role = "user"
	f.api.LoginResult = result

	err := f.manager.Login(context.Background(), "user@x.com", "pw")
	require.ErrorIs(t, err, apierrors.ErrRoleNotAllowed)

	state := f.manager.Snapshot()
	require.False(t, state.Authenticated)
	require.True(t, f.store.Get().IsZero())
	require.Zero(t, f.store.SetCalls)
}

func TestLoginMalformedPermissionsFail(t *testing.T) {
	f := setupTestFixture(t)
	result := adminLoginResult(t)
	result.Role.Permissions = []permissions.Permission{
		{Module: "user", CanRead: true},
		{Module: "user", CanDelete: true},
	}
	f.api.LoginResult = result

	err := f.manager.Login(context.Background(), testUserEmail, "correct")
	require.ErrorIs(t, err, apierrors.ErrMalformedPermissions)
	require.False(t, f.manager.Snapshot().Authenticated)
	require.True(t, f.store.Get().IsZero())
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	f := setupTestFixture(t)
	f.api.LoginResult = adminLoginResult(t)
	require.NoError(t, f.manager.Login(context.Background(), testUserEmail, "correct"))

	f.manager.Logout()

	state := f.manager.Snapshot()
	require.False(t, state.Authenticated)
	require.True(t, f.store.Get().IsZero())
	require.Nil(t, state.User)
	require.Empty(t, state.Permissions)
}

func TestHandleSessionExpiredNavigatesToLogin(t *testing.T) {
	f := setupTestFixture(t)
	f.api.LoginResult = adminLoginResult(t)
	require.NoError(t, f.manager.Login(context.Background(), testUserEmail, "correct"))

	f.manager.HandleSessionExpired()

	require.False(t, f.manager.Snapshot().Authenticated)
	require.Equal(t, "/login", f.navigatedTo)
}

func TestCanAnyHidesUnknownModules(t *testing.T) {
	f := setupTestFixture(t)
	f.api.LoginResult = adminLoginResult(t)
	require.NoError(t, f.manager.Login(context.Background(), testUserEmail, "correct"))

	require.True(t, f.manager.CanAny("user"))
	require.False(t, f.manager.CanAny("course"))
}
