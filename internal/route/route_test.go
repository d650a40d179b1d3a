package route

import (
	"testing"

	"github.com/naveenspark/yogapath/internal/session"
	"github.com/naveenspark/yogapath/pkg/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Route
		ok   bool
	}{
		{"", Home, true},
		{"/", Home, true},
		{"dashboard", Dashboard, true},
		{"/dashboard", Dashboard, true},
		{"/dashboard/", Dashboard, true},
		{"Practice-Log", PracticeLog, true},
		{"recommendations", Recommendations, true},
		{"login", Login, true},
		{"settings", Home, false},
		{"/admin/users", Home, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Parse(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestProtected(t *testing.T) {
	for _, r := range []Route{Home, Login, Register} {
		if r.Protected() {
			t.Errorf("%s should be public", r)
		}
	}
	for _, r := range []Route{Dashboard, Profile, Recommendations, PracticeLog} {
		if !r.Protected() {
			t.Errorf("%s should be protected", r)
		}
	}
}

func TestResolve(t *testing.T) {
	user := &domain.Identity{ID: 1, Name: "Asha"}
	loading := session.State{IsLoading: true}
	anonymous := session.State{}
	signedIn := session.State{User: user}

	tests := []struct {
		name   string
		route  Route
		state  session.State
		status Status
		target Route
	}{
		{"public while loading", Login, loading, Render, Login},
		{"home anonymous", Home, anonymous, Render, Home},
		{"register signed in", Register, signedIn, Render, Register},
		{"protected while loading", Dashboard, loading, Checking, Dashboard},
		{"protected while loading with stale user", Profile, session.State{User: user, IsLoading: true}, Checking, Profile},
		{"protected anonymous", Dashboard, anonymous, Redirect, Login},
		{"protected signed in", PracticeLog, signedIn, Render, PracticeLog},
		{"unknown route", Route("/nowhere"), anonymous, Render, Home},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Resolve(tt.route, tt.state)
			if d.Status != tt.status || d.Target != tt.target {
				t.Errorf("Resolve(%s) = {%s %s}, want {%s %s}", tt.route, d.Status, d.Target, tt.status, tt.target)
			}
		})
	}
}

func TestResolveNeverRendersProtectedWhileLoading(t *testing.T) {
	for _, r := range All {
		if !r.Protected() {
			continue
		}
		for _, user := range []*domain.Identity{nil, {ID: 2}} {
			d := Resolve(r, session.State{User: user, IsLoading: true})
			if d.Status == Render {
				t.Errorf("Resolve(%s) rendered while loading", r)
			}
		}
	}
}
