package domain

import (
	"testing"
	"time"
)

func TestIsOutdated(t *testing.T) {
	generated := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		profile *Profile
		rec     *Recommendation
		want    bool
	}{
		{"nil recommendation", &Profile{ID: 1}, nil, false},
		{"nil profile falls back to flag", nil, &Recommendation{IsOutdated: true}, true},
		{"nil profile, fresh flag", nil, &Recommendation{}, false},
		{"backend flag wins", &Profile{ID: 1}, &Recommendation{ProfileID: 1, IsOutdated: true}, true},
		{"other profile", &Profile{ID: 2}, &Recommendation{ProfileID: 1}, true},
		{
			"profile edited after generation",
			&Profile{ID: 1, UpdatedAt: NewTimestamp(generated.Add(time.Hour))},
			&Recommendation{ProfileID: 1, CreatedAt: NewTimestamp(generated)},
			true,
		},
		{
			"profile edited before generation",
			&Profile{ID: 1, UpdatedAt: NewTimestamp(generated.Add(-time.Hour))},
			&Recommendation{ProfileID: 1, CreatedAt: NewTimestamp(generated)},
			false,
		},
		{
			"unknown timestamps",
			&Profile{ID: 1},
			&Recommendation{ProfileID: 1, CreatedAt: NewTimestamp(generated)},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOutdated(tt.profile, tt.rec); got != tt.want {
				t.Errorf("IsOutdated() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExceedsSessionBudget(t *testing.T) {
	tests := []struct {
		name    string
		weekly  int
		perWeek int
		total   int
		want    bool
	}{
		{"fits exactly", 90, 3, 30, false},
		{"shorter than budget", 90, 3, 20, false},
		{"longer than budget", 90, 3, 31, true},
		{"floor division", 100, 3, 34, true},
		{"floor division boundary", 100, 3, 33, false},
		{"no sessions", 90, 0, 45, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Profile{WeeklyMinutesAvailable: tt.weekly, SessionsPerWeek: tt.perWeek}
			r := &Recommendation{TotalMinutesPerSession: tt.total}
			if got := ExceedsSessionBudget(p, r); got != tt.want {
				t.Errorf("ExceedsSessionBudget(%d/%d, %d) = %v, want %v", tt.weekly, tt.perWeek, tt.total, got, tt.want)
			}
		})
	}

	if ExceedsSessionBudget(nil, &Recommendation{TotalMinutesPerSession: 500}) {
		t.Error("nil profile should never warn")
	}
	if ExceedsSessionBudget(&Profile{WeeklyMinutesAvailable: 10, SessionsPerWeek: 1}, nil) {
		t.Error("nil recommendation should never warn")
	}
}

func TestAuthResponseIdentity(t *testing.T) {
	resp := AuthResponse{Token: "tok", UserID: 7, Email: "a@x.com", Name: "Asha"}
	id := resp.Identity()
	if id.ID != 7 || id.Name != "Asha" || id.Email != "a@x.com" {
		t.Errorf("Identity() = %+v", id)
	}
	if !id.Enabled {
		t.Error("fresh login identity should be enabled")
	}
	if !id.CreatedAt.IsZero() {
		t.Errorf("CreatedAt = %v, want zero", id.CreatedAt)
	}
}
