// Package guard gates navigation on the session. It distinguishes three
// outcomes: not signed in (go to login, remembering where you were), signed
// in but not allowed (go to the unauthorized page), and session still being
// established (no decision yet).
package guard

import (
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/MTN-Developers/mtn-academy-dashboard/permissions"
	"github.com/MTN-Developers/mtn-academy-dashboard/session"
)

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// SessionReader exposes the session state the guard decides on.
type SessionReader interface {
	Snapshot() session.State
}

type Guard struct {
	sessions SessionReader
}

func New(sessions SessionReader) (*Guard, error) {
	if sessions == nil {
		return nil, errors.New("[guard.New] session reader is required")
	}
	return &Guard{sessions: sessions}, nil
}

// Protect wraps a handler with the session check and, when module is
// non-empty, the (module, action) permission check. An empty module gates on
// authentication alone.
func (g *Guard) Protect(module string, action permissions.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := g.sessions.Snapshot()

			// Bootstrap or login still in flight: neither allow nor deny.
			if state.Loading {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Loading...", http.StatusServiceUnavailable)
				return
			}

			if !state.Authenticated {
				redirectToLogin(w, r)
				return
			}

			if module != "" && !state.Permissions.Can(module, action) {
				// Valid session, disallowed action. Not a login problem.
				http.Redirect(w, r, UnauthorizedPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// redirectToLogin preserves the originally requested location so the login
// page can send the user back afterwards.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := LoginPath + "?from=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, target, http.StatusSeeOther)
}
