package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MTN-Developers/mtn-academy-dashboard/guard"
	"github.com/MTN-Developers/mtn-academy-dashboard/permissions"
	"github.com/MTN-Developers/mtn-academy-dashboard/session"
)

// stubSession returns a fixed state snapshot.
type stubSession struct {
	state session.State
}

func (s *stubSession) Snapshot() session.State { return s.state }

func protect(t *testing.T, state session.State, module string, action permissions.Action) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	g, err := guard.New(&stubSession{state: state})
	require.NoError(t, err)

	reached := false
	handler := g.Protect(module, action)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/courses?page=2", nil))
	return recorder, reached
}

func TestNewRequiresSessionReader(t *testing.T) {
	_, err := guard.New(nil)
	require.Error(t, err)
}

func TestLoadingSessionDefersTheDecision(t *testing.T) {
	recorder, reached := protect(t, session.State{Loading: true}, "course", permissions.ActionRead)

	require.False(t, reached)
	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	require.Equal(t, "1", recorder.Header().Get("Retry-After"))
	require.Empty(t, recorder.Header().Get("Location"), "loading must not redirect anywhere")
}

func TestUnauthenticatedRedirectsToLoginWithReturnPath(t *testing.T) {
	recorder, reached := protect(t, session.State{}, "course", permissions.ActionRead)

	require.False(t, reached)
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	require.Equal(t, "/login?from=%2Fcourses%3Fpage%3D2", recorder.Header().Get("Location"))
}

func TestDeniedPermissionRedirectsToUnauthorized(t *testing.T) {
	state := session.State{
		Authenticated: true,
		Permissions: permissions.Set{
			"semester": {CanRead: true},
		},
	}
	recorder, reached := protect(t, state, "course", permissions.ActionRead)

	require.False(t, reached)
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	require.Equal(t, guard.UnauthorizedPath, recorder.Header().Get("Location"))
}

func TestAllowedRequestReachesTheHandler(t *testing.T) {
	state := session.State{
		Authenticated: true,
		Permissions: permissions.Set{
			"course": {CanRead: true},
		},
	}
	recorder, reached := protect(t, state, "course", permissions.ActionRead)

	require.True(t, reached)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestActionIsCheckedNotJustModule(t *testing.T) {
	state := session.State{
		Authenticated: true,
		Permissions: permissions.Set{
			"course": {CanRead: true},
		},
	}
	_, reached := protect(t, state, "course", permissions.ActionDelete)
	require.False(t, reached)
}

func TestEmptyModuleGatesOnAuthenticationAlone(t *testing.T) {
	state := session.State{Authenticated: true}

	_, reached := protect(t, state, "", permissions.ActionRead)
	require.True(t, reached, "authenticated user passes an auth-only route with no permissions at all")

	recorder, reached := protect(t, session.State{}, "", permissions.ActionRead)
	require.False(t, reached)
	require.Equal(t, http.StatusSeeOther, recorder.Code)
}
