package server

import (
	"fmt"
	"html"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/MTN-Developers/mtn-academy-dashboard/dashboard"
	"github.com/MTN-Developers/mtn-academy-dashboard/guard"
	"github.com/MTN-Developers/mtn-academy-dashboard/internal/apierrors"
)

func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := s.sessions.Snapshot()
		if state.Authenticated && !state.Loading {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		from := r.URL.Query().Get("from")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, loginPage, html.EscapeString(from), "")
	}
}

func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		email := r.PostFormValue("email")
		password := r.PostFormValue("password")
		from := r.PostFormValue("from")

		if err := s.sessions.Login(r.Context(), email, password); err != nil {
			message := "Invalid credentials"
			if errors.Is(err, apierrors.ErrRoleNotAllowed) {
				message = "This account cannot access the admin dashboard"
			}
			log.Debug().Err(err).Str("email", email).Msg("Login attempt failed")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprintf(w, loginPage, html.EscapeString(from), html.EscapeString(message))
			return
		}

		target := "/"
		if from != "" && from[0] == '/' {
			target = from
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.sessions.Logout()
		http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
	}
}

func (s *Server) UnauthorizedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, unauthorizedPage)
	}
}

// PageHandler renders a guarded resource page. It exists to exercise the
// collection through the gateway; presentation stays minimal on purpose.
func (s *Server) PageHandler(route dashboard.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := s.pageBody(r, route)
		if err != nil {
			log.Warn().Err(err).Str("path", route.Path).Msg("Failed to load page data")
			http.Error(w, "failed to load data", http.StatusBadGateway)
			return
		}

		state := s.sessions.Snapshot()
		userName := ""
		if state.User != nil {
			userName = state.User.Name
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, resourcePage, html.EscapeString(route.Title), html.EscapeString(route.Title), html.EscapeString(userName), s.navFragment(), body)
	}
}

func (s *Server) pageBody(r *http.Request, route dashboard.Route) (string, error) {
	ctx := r.Context()
	switch route.Path {
	case "/semesters":
		semesters, err := s.collection.ListSemesters(ctx)
		if err != nil {
			return "", err
		}
		items := ""
		for _, sem := range semesters {
			items += "<li>" + html.EscapeString(sem.NameEn) + "</li>"
		}
		return "<ul>" + items + "</ul>", nil
	case "/users":
		page, err := s.collection.ListUsers(ctx, dashboard.ListParams{Limit: 50, Page: 1})
		if err != nil {
			return "", err
		}
		items := ""
		for _, u := range page.Data {
			items += "<li>" + html.EscapeString(u.Name) + " &lt;" + html.EscapeString(u.Email) + "&gt;</li>"
		}
		return "<ul>" + items + "</ul>", nil
	case "/events":
		page, err := s.collection.ListEvents(ctx, dashboard.ListParams{Limit: 50, Page: 1})
		if err != nil {
			return "", err
		}
		items := ""
		for _, e := range page.Data {
			items += "<li>" + html.EscapeString(e.TitleEn) + "</li>"
		}
		return "<ul>" + items + "</ul>", nil
	case "/course-requests":
		page, err := s.collection.ListCourseRequests(ctx, dashboard.ListParams{Limit: 50, Page: 1})
		if err != nil {
			return "", err
		}
		items := ""
		for _, req := range page.Data {
			items += "<li>" + html.EscapeString(req.User.Name) + ": " + html.EscapeString(req.Course.NameEn) + " (" + html.EscapeString(req.Status) + ")</li>"
		}
		return "<ul>" + items + "</ul>", nil
	default:
		// Courses, chapters, videos and materials are scoped to a parent
		// resource; their pages start from the selector.
		return "<p>Select a semester to browse.</p>", nil
	}
}

// navFragment lists only the sections the session may see, the way the menu
// hides entries the role holds no capability for.
func (s *Server) navFragment() string {
	nav := ""
	for _, route := range dashboard.Routes() {
		if route.Module != "" && !s.sessions.CanAny(route.Module) {
			continue
		}
		nav += fmt.Sprintf(`<a href="%s">%s</a> `, route.Path, html.EscapeString(route.Title))
	}
	return nav
}

const loginPage = `<!doctype html>
<html><head><title>MTN Academy - Login</title></head>
<body>
<h1>Hello, Welcome Back!</h1>
<form method="post" action="/login">
<input type="hidden" name="from" value="%s">
<input type="text" name="email" placeholder="Email">
<input type="password" name="password" placeholder="Password">
<button type="submit">Log In</button>
<p>%s</p>
</form>
</body></html>`

const unauthorizedPage = `<!doctype html>
<html><head><title>Access Denied</title></head>
<body>
<h1>Access Denied</h1>
<p>You do not have permission to view this page.</p>
<a href="/">Return to Home</a>
</body></html>`

const resourcePage = `<!doctype html>
<html><head><title>%s</title></head>
<body>
<h1>%s</h1>
<p>Signed in as %s · <a href="/logout">Log out</a></p>
<nav>%s</nav>
%s
</body></html>`
