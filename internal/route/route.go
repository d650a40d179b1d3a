// Package route defines the client's screens and decides whether a screen
// may render for a given session state.
package route

import (
	"strings"

	"github.com/naveenspark/yogapath/internal/session"
)

// Route is a client-visible location.
type Route string

const (
	Home            Route = "/"
	Login           Route = "/login"
	Register        Route = "/register"
	Dashboard       Route = "/dashboard"
	Profile         Route = "/profile"
	Recommendations Route = "/recommendations"
	PracticeLog     Route = "/practice-log"
)

// All lists every route in navigation order.
var All = []Route{Home, Login, Register, Dashboard, Profile, Recommendations, PracticeLog}

var protected = map[Route]bool{
	Dashboard:       true,
	Profile:         true,
	Recommendations: true,
	PracticeLog:     true,
}

// Protected reports whether r requires a signed-in user.
func (r Route) Protected() bool {
	return protected[r]
}

// Known reports whether r is one of the defined routes.
func (r Route) Known() bool {
	for _, k := range All {
		if k == r {
			return true
		}
	}
	return false
}

func (r Route) String() string { return string(r) }

// Parse maps user input such as "dashboard" or "/practice-log" to a route.
// ok is false for unknown input, in which case Home is returned.
func Parse(s string) (Route, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Home, true
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	r := Route(strings.TrimRight(s, "/"))
	if r == "" {
		r = Home
	}
	if !r.Known() {
		return Home, false
	}
	return r, true
}

// Status is the guard's verdict.
type Status int

const (
	// Checking means the session is still loading; show a placeholder and
	// do not navigate.
	Checking Status = iota
	// Redirect means navigate to Decision.Target instead.
	Redirect
	// Render means the requested route may be shown.
	Render
)

func (s Status) String() string {
	switch s {
	case Checking:
		return "checking"
	case Redirect:
		return "redirect"
	case Render:
		return "render"
	}
	return "unknown"
}

// Decision is the outcome of Resolve.
type Decision struct {
	Status Status
	Target Route
}

// Resolve decides what to do with a navigation to r. Public routes never
// consult the session. Unknown routes resolve to Home.
func Resolve(r Route, st session.State) Decision {
	if !r.Known() {
		r = Home
	}
	if !r.Protected() {
		return Decision{Status: Render, Target: r}
	}
	switch {
	case st.IsLoading:
		return Decision{Status: Checking, Target: r}
	case !st.IsAuthenticated():
		return Decision{Status: Redirect, Target: Login}
	default:
		return Decision{Status: Render, Target: r}
	}
}
