// Package server hosts the admin surface: the guarded resource pages plus
// the login/logout/unauthorized entry points. Rendering is deliberately bare;
// the interesting work happens in the session, gateway and guard packages.
package server

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/MTN-Developers/mtn-academy-dashboard/dashboard"
	"github.com/MTN-Developers/mtn-academy-dashboard/guard"
	"github.com/MTN-Developers/mtn-academy-dashboard/session"
)

type Server struct {
	mux        *http.ServeMux
	sessions   *session.Manager
	guard      *guard.Guard
	collection *dashboard.Collection
}

func New(sessions *session.Manager, collection *dashboard.Collection) (*Server, error) {
	if sessions == nil {
		return nil, errors.New("[server.New] session manager is required")
	}
	if collection == nil {
		return nil, errors.New("[server.New] resource collection is required")
	}

	g, err := guard.New(sessions)
	if err != nil {
		return nil, errors.Wrap(err, "[server.New]")
	}

	s := &Server{
		mux:        http.NewServeMux(),
		sessions:   sessions,
		guard:      g,
		collection: collection,
	}
	s.initRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) initRoutes() {
	s.mux.HandleFunc("GET "+guard.LoginPath, s.LoginPageHandler())
	s.mux.HandleFunc("POST "+guard.LoginPath, s.LoginSubmissionHandler())
	s.mux.HandleFunc("GET /logout", s.LogoutHandler())
	s.mux.HandleFunc("GET "+guard.UnauthorizedPath, s.UnauthorizedHandler())

	for _, route := range dashboard.Routes() {
		pattern := "GET " + route.Path
		if route.Path == "/" {
			pattern = "GET /{$}"
		}
		s.mux.Handle(pattern, s.guard.Protect(route.Module, route.Action)(s.PageHandler(route)))
	}
}
