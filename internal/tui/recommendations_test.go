package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/naveenspark/yogapath/pkg/client"
	"github.com/naveenspark/yogapath/pkg/domain"
)

func testProfile(updated time.Time) *domain.Profile {
	return &domain.Profile{
		ID:                     3,
		UserID:                 7,
		WeeklyMinutesAvailable: 60,
		SessionsPerWeek:        3,
		DynamicPreference:      domain.DynamicPreferenceDynamic,
		StructurePreference:    domain.StructurePreferenceNone,
		PhilosophyOpenness:     domain.PhilosophyOpen,
		UpdatedAt:              domain.NewTimestamp(updated),
	}
}

func testRec(id int64, total int, created time.Time) domain.Recommendation {
	return domain.Recommendation{
		ID:                     id,
		ProfileID:              3,
		AsanaMinutes:           total / 2,
		PranayamaMinutes:       total / 4,
		RelaxationMinutes:      total - total/2 - total/4,
		TotalMinutesPerSession: total,
		Styles:                 []domain.YogaStyle{{ID: 2, Name: "Vinyasa"}},
		CreatedAt:              domain.NewTimestamp(created),
	}
}

func TestRecommendationsNoProfileSkipsFetch(t *testing.T) {
	var recHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/recommendations") {
			recHits.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Profile not found"}) //nolint:errcheck
	}))
	defer srv.Close()

	m := newRecommendationsModel(client.New(srv.URL, client.StaticToken("tok")), nil)
	m.width = 80
	m, cmd := m.Update(m.Init()())
	if cmd != nil {
		t.Fatal("expected no follow-up fetch without a profile")
	}
	if n := recHits.Load(); n != 0 {
		t.Errorf("recommendation endpoints hit %d times, want 0", n)
	}
	if !strings.Contains(m.View(), "Please create your profile first") {
		t.Errorf("expected create-profile prompt, got:\n%s", m.View())
	}
}

func TestRecommendationsLoadsLatestAndHistory(t *testing.T) {
	now := time.Now().UTC()
	latest := testRec(9, 20, now)
	older := testRec(8, 20, now.Add(-48*time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/profiles/user/0":
			json.NewEncoder(w).Encode(testProfile(now.Add(-72 * time.Hour))) //nolint:errcheck
		case "/recommendations/profile/3/latest":
			json.NewEncoder(w).Encode(latest) //nolint:errcheck
		case "/recommendations/profile/3":
			json.NewEncoder(w).Encode([]domain.Recommendation{latest, older}) //nolint:errcheck
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	m := newRecommendationsModel(client.New(srv.URL, client.StaticToken("tok")), nil)
	m.width = 80
	m, cmd := m.Update(m.Init()())
	if cmd == nil {
		t.Fatal("expected recommendations fetch once the profile loaded")
	}
	m, _ = m.Update(cmd())

	view := m.View()
	if !strings.Contains(view, "CURRENT PLAN") || !strings.Contains(view, "Vinyasa") {
		t.Errorf("expected current plan, got:\n%s", view)
	}
	if !strings.Contains(view, "HISTORY") {
		t.Errorf("expected history of older plans, got:\n%s", view)
	}
	if strings.Contains(view, "profile changed") || strings.Contains(view, "schedule allows") {
		t.Errorf("no warnings expected, got:\n%s", view)
	}
}

func TestRecommendationsWarnings(t *testing.T) {
	now := time.Now().UTC()
	m := newRecommendationsModel(nil, nil)
	m.width = 80
	m, _ = m.Update(recProfileMsg{profile: testProfile(now)})
	rec := testRec(9, 30, now.Add(-time.Hour))
	m, _ = m.Update(recsLoadedMsg{latest: &rec, history: []domain.Recommendation{rec}})

	view := m.View()
	if !strings.Contains(view, "profile changed") {
		t.Errorf("expected outdated warning, got:\n%s", view)
	}
	if !strings.Contains(view, "more than the 20 min") {
		t.Errorf("expected session budget warning, got:\n%s", view)
	}
}

func TestRecommendationsGenerate(t *testing.T) {
	now := time.Now().UTC()
	m := newRecommendationsModel(nil, nil)
	m, _ = m.Update(recProfileMsg{profile: testProfile(now.Add(-time.Hour))})
	m, _ = m.Update(recsLoadedMsg{})
	if !strings.Contains(m.View(), "No recommendations yet") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}

	m, cmd := m.Update(runeKey('g'))
	if cmd == nil || !m.generating {
		t.Fatal("expected a generate command")
	}
	rec := testRec(10, 20, now)
	m, _ = m.Update(recGeneratedMsg{rec: &rec})
	if m.latest == nil || m.latest.ID != 10 || len(m.history) != 1 {
		t.Errorf("latest = %+v history = %d", m.latest, len(m.history))
	}

	m, _ = m.Update(recGeneratedMsg{apiResult: apiResult{err: &client.HTTPError{StatusCode: 500}}})
	if !strings.Contains(m.View(), "Failed to generate recommendation") {
		t.Errorf("expected failure status, got:\n%s", m.View())
	}
}

func TestRecommendationsCopyStatus(t *testing.T) {
	m := newRecommendationsModel(nil, nil)
	m, cmd := m.Update(statusMsg{text: "copied!"})
	if m.status != "copied!" || cmd == nil {
		t.Errorf("status = %q, want copied! with a clear timer", m.status)
	}
	m, _ = m.Update(clearStatusMsg{})
	if m.status != "" {
		t.Errorf("status not cleared: %q", m.status)
	}
}

func TestPlanSummary(t *testing.T) {
	rec := testRec(1, 20, time.Now())
	rec.MantraMinutes = 0
	s := planSummary(&rec)
	for _, want := range []string{"20 min per session", "Asana (postures): 10 min", "Pranayama (breath): 5 min", "Relaxation: 5 min", "Styles: Vinyasa"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "Mantra") {
		t.Errorf("empty components should be omitted:\n%s", s)
	}
}
