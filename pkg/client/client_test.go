package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/naveenspark/yogapath/pkg/domain"
)

func TestLogin_NoAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("login sent Authorization %q, want none", got)
		}
		var req domain.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(domain.AuthResponse{ //nolint:errcheck
			Token:  "jwt-token",
			UserID: 42,
			Email:  req.Email,
			Name:   "Asha",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("stale-token"))
	resp, err := c.Login(context.Background(), domain.LoginRequest{Email: "a@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if resp.Token != "jwt-token" || resp.UserID != 42 || resp.Name != "Asha" {
		t.Errorf("Login() = %+v", resp)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Login(context.Background(), domain.LoginRequest{Email: "a@x.com", Password: "nope"})
	if err == nil {
		t.Fatal("expected error for invalid credentials")
	}
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false, want true", err)
	}
	if got := err.Error(); !strings.Contains(got, "Bad credentials") {
		t.Errorf("error = %q, want it to contain 'Bad credentials'", got)
	}
}

func TestVerify_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/verify" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "not authenticated"}) //nolint:errcheck
			return
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		w.Write([]byte(`{"id":3,"name":"Asha","email":"a@x.com","enabled":true,"createdAt":"2025-01-02T03:04:05"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("test-token"))
	me, err := c.Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if me.ID != 3 || me.Name != "Asha" || !me.Enabled {
		t.Errorf("Verify() = %+v", me)
	}
	if me.CreatedAt.Year() != 2025 {
		t.Errorf("CreatedAt = %v, want 2025", me.CreatedAt)
	}

	bad := New(srv.URL, StaticToken("expired"))
	_, err = bad.Verify(context.Background())
	if err == nil {
		t.Fatal("expected error for bad token")
	}
	if got := err.Error(); !strings.Contains(got, "HTTP 401") {
		t.Errorf("error = %q, want it to contain 'HTTP 401'", got)
	}
}

func TestGetProfileByUser_NotFoundIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/profiles/user/9" {
			t.Errorf("path = %q, want /profiles/user/9", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "profile not found"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	p, err := c.GetProfileByUser(context.Background(), 9)
	if err != nil {
		t.Fatalf("GetProfileByUser() error: %v", err)
	}
	if p != nil {
		t.Errorf("GetProfileByUser() = %+v, want nil", p)
	}
}

func TestGetProfileByUser_NullBodyIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("null")) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	p, err := c.GetProfileByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetProfileByUser() error: %v", err)
	}
	if p != nil {
		t.Errorf("GetProfileByUser() = %+v, want nil", p)
	}
}

func TestLatestRecommendation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recommendations/profile/5/latest":
			json.NewEncoder(w).Encode(domain.Recommendation{ //nolint:errcheck
				ID:                     11,
				ProfileID:              5,
				TotalMinutesPerSession: 30,
				Styles:                 []domain.YogaStyle{{ID: 1, Name: "Hatha"}},
			})
		case "/recommendations/profile/6/latest":
			w.WriteHeader(http.StatusNotFound)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	rec, err := c.LatestRecommendation(context.Background(), 5)
	if err != nil {
		t.Fatalf("LatestRecommendation() error: %v", err)
	}
	if rec == nil || rec.ID != 11 || len(rec.Styles) != 1 {
		t.Fatalf("LatestRecommendation() = %+v", rec)
	}

	rec, err = c.LatestRecommendation(context.Background(), 6)
	if err != nil {
		t.Fatalf("LatestRecommendation(missing) error: %v", err)
	}
	if rec != nil {
		t.Errorf("LatestRecommendation(missing) = %+v, want nil", rec)
	}
}

func TestListPracticeLogsInRange_QueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/practice-logs/user/4" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("startDate") != "2025-03-01" || q.Get("endDate") != "2025-03-07" {
			t.Errorf("query = %v, want startDate/endDate", q)
		}
		w.Write([]byte(`[{"id":1,"userId":4,"practiceDate":"2025-03-02","minutesPracticed":45,"notes":null}]`)) //nolint:errcheck
	}))
	defer srv.Close()

	start, _ := domain.ParseDate("2025-03-01") //nolint:errcheck
	end, _ := domain.ParseDate("2025-03-07")   //nolint:errcheck

	c := New(srv.URL, StaticToken("tok"))
	logs, err := c.ListPracticeLogsInRange(context.Background(), 4, start, end)
	if err != nil {
		t.Fatalf("ListPracticeLogsInRange() error: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(logs))
	}
	if logs[0].MinutesPracticed != 45 || logs[0].Notes != "" {
		t.Errorf("logs[0] = %+v", logs[0])
	}
	if logs[0].PracticeDate.String() != "2025-03-02" {
		t.Errorf("PracticeDate = %q, want 2025-03-02", logs[0].PracticeDate.String())
	}
}

func TestDeletePracticeLog(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/practice-logs/8" {
			http.NotFound(w, r)
			return
		}
		calls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	if err := c.DeletePracticeLog(context.Background(), 8); err != nil {
		t.Fatalf("DeletePracticeLog() error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("delete calls = %d, want 1", calls.Load())
	}
}

func TestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	_, err := c.ListGoals(context.Background())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if got := err.Error(); !strings.Contains(got, "boom") {
		t.Errorf("error = %q, want it to contain 'boom'", got)
	}
	if !IsStatus(err, http.StatusInternalServerError) {
		t.Error("IsStatus(err, 500) = false, want true")
	}
}

func TestDoRequest_NoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	if _, err := c.ListYogaStyles(context.Background()); err == nil {
		t.Fatal("expected error for 503 response")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want exactly 1", calls.Load())
	}
}

func TestDoRequest_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Second) // slow server
		w.Write([]byte("[]"))       //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	_, err := c.ListLimitations(ctx)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}
