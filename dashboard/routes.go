package dashboard

import "github.com/MTN-Developers/mtn-academy-dashboard/permissions"

// Route binds a dashboard path to the permission it requires. An empty
// Module means the page only needs a signed-in session.
type Route struct {
	Path   string
	Title  string
	Module string
	Action permissions.Action
}

// Routes is the navigation table of the admin surface. The server registers
// each entry behind the guard; menus use CanAny on the module to decide
// visibility.
func Routes() []Route {
	return []Route{
		{Path: "/", Title: "Home"},
		{Path: "/semesters", Title: "Semesters", Module: "semester", Action: permissions.ActionRead},
		{Path: "/courses", Title: "Courses", Module: "course", Action: permissions.ActionRead},
		{Path: "/chapters", Title: "Chapters", Module: "chapter", Action: permissions.ActionRead},
		{Path: "/videos", Title: "Videos", Module: "video", Action: permissions.ActionRead},
		{Path: "/materials", Title: "Materials", Module: "material", Action: permissions.ActionRead},
		{Path: "/users", Title: "Users", Module: "user", Action: permissions.ActionRead},
		{Path: "/events", Title: "Events", Module: "event", Action: permissions.ActionRead},
		{Path: "/course-requests", Title: "Course Requests", Module: "course-request", Action: permissions.ActionRead},
	}
}
