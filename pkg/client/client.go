package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/naveenspark/yogapath/pkg/domain"
)

// DefaultTimeout bounds every request unless WithTimeout overrides it.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for authenticated calls. It is read
// on every request so a login or logout takes effect immediately.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token returns the token.
func (s StaticToken) Token() string { return string(s) }

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout sets the HTTP client timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// Client is the Yoga Path API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a new API client. tokens may be nil for unauthenticated use.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// --- Auth ---

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", req, &resp, false); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &resp, nil
}

// Register creates an account and returns a session token for it.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", req, &resp, false); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return &resp, nil
}

// Verify returns the identity behind the current token.
func (c *Client) Verify(ctx context.Context) (*domain.Identity, error) {
	var ident domain.Identity
	if err := c.get(ctx, "/auth/verify", &ident); err != nil {
		return nil, fmt.Errorf("client.Verify: %w", err)
	}
	return &ident, nil
}

// --- Profiles ---

// GetProfileByUser returns the user's profile, or nil when none exists yet.
func (c *Client) GetProfileByUser(ctx context.Context, userID int64) (*domain.Profile, error) {
	var p *domain.Profile
	if err := c.get(ctx, "/profiles/user/"+id(userID), &p); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("client.GetProfileByUser: %w", err)
	}
	return p, nil
}

// CreateProfile creates a profile.
func (c *Client) CreateProfile(ctx context.Context, req domain.ProfileRequest) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.post(ctx, "/profiles", req, &p); err != nil {
		return nil, fmt.Errorf("client.CreateProfile: %w", err)
	}
	return &p, nil
}

// UpdateProfile replaces the profile with the given ID.
func (c *Client) UpdateProfile(ctx context.Context, profileID int64, req domain.ProfileRequest) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.doRequest(ctx, http.MethodPut, "/profiles/"+id(profileID), req, &p, true); err != nil {
		return nil, fmt.Errorf("client.UpdateProfile: %w", err)
	}
	return &p, nil
}

// --- Recommendations ---

// ListRecommendations returns every recommendation generated for a profile, newest first.
func (c *Client) ListRecommendations(ctx context.Context, profileID int64) ([]domain.Recommendation, error) {
	var recs []domain.Recommendation
	if err := c.get(ctx, "/recommendations/profile/"+id(profileID), &recs); err != nil {
		return nil, fmt.Errorf("client.ListRecommendations: %w", err)
	}
	return recs, nil
}

// LatestRecommendation returns the newest recommendation for a profile, or nil
// when none has been generated.
func (c *Client) LatestRecommendation(ctx context.Context, profileID int64) (*domain.Recommendation, error) {
	var rec *domain.Recommendation
	if err := c.get(ctx, "/recommendations/profile/"+id(profileID)+"/latest", &rec); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("client.LatestRecommendation: %w", err)
	}
	return rec, nil
}

// GenerateRecommendation asks the backend for a new recommendation.
func (c *Client) GenerateRecommendation(ctx context.Context, profileID int64) (*domain.Recommendation, error) {
	var rec domain.Recommendation
	if err := c.post(ctx, "/recommendations/generate/"+id(profileID), nil, &rec); err != nil {
		return nil, fmt.Errorf("client.GenerateRecommendation: %w", err)
	}
	return &rec, nil
}

// --- Practice logs ---

// ListPracticeLogs returns all of a user's practice logs.
func (c *Client) ListPracticeLogs(ctx context.Context, userID int64) ([]domain.PracticeLog, error) {
	var logs []domain.PracticeLog
	if err := c.get(ctx, "/practice-logs/user/"+id(userID), &logs); err != nil {
		return nil, fmt.Errorf("client.ListPracticeLogs: %w", err)
	}
	return logs, nil
}

// ListPracticeLogsInRange returns a user's logs between start and end inclusive.
// A zero bound is left open.
func (c *Client) ListPracticeLogsInRange(ctx context.Context, userID int64, start, end domain.Date) ([]domain.PracticeLog, error) {
	params := url.Values{}
	if !start.IsZero() {
		params.Set("startDate", start.String())
	}
	if !end.IsZero() {
		params.Set("endDate", end.String())
	}
	path := "/practice-logs/user/" + id(userID)
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var logs []domain.PracticeLog
	if err := c.get(ctx, path, &logs); err != nil {
		return nil, fmt.Errorf("client.ListPracticeLogsInRange: %w", err)
	}
	return logs, nil
}

// CreatePracticeLog logs a practice session.
func (c *Client) CreatePracticeLog(ctx context.Context, req domain.PracticeLogRequest) (*domain.PracticeLog, error) {
	var l domain.PracticeLog
	if err := c.post(ctx, "/practice-logs", req, &l); err != nil {
		return nil, fmt.Errorf("client.CreatePracticeLog: %w", err)
	}
	return &l, nil
}

// UpdatePracticeLog replaces the log entry with the given ID.
func (c *Client) UpdatePracticeLog(ctx context.Context, logID int64, req domain.PracticeLogRequest) (*domain.PracticeLog, error) {
	var l domain.PracticeLog
	if err := c.doRequest(ctx, http.MethodPut, "/practice-logs/"+id(logID), req, &l, true); err != nil {
		return nil, fmt.Errorf("client.UpdatePracticeLog: %w", err)
	}
	return &l, nil
}

// DeletePracticeLog deletes a log entry.
func (c *Client) DeletePracticeLog(ctx context.Context, logID int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/practice-logs/"+id(logID), nil, nil, true); err != nil {
		return fmt.Errorf("client.DeletePracticeLog: %w", err)
	}
	return nil
}

// --- Reference data ---

// ListGoals returns every goal a profile can select.
func (c *Client) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	var goals []domain.Goal
	if err := c.get(ctx, "/goals", &goals); err != nil {
		return nil, fmt.Errorf("client.ListGoals: %w", err)
	}
	return goals, nil
}

// ListYogaStyles returns every known yoga style.
func (c *Client) ListYogaStyles(ctx context.Context) ([]domain.YogaStyle, error) {
	var styles []domain.YogaStyle
	if err := c.get(ctx, "/yoga-styles", &styles); err != nil {
		return nil, fmt.Errorf("client.ListYogaStyles: %w", err)
	}
	return styles, nil
}

// ListLimitations returns every known physical limitation.
func (c *Client) ListLimitations(ctx context.Context) ([]domain.Limitation, error) {
	var limitations []domain.Limitation
	if err := c.get(ctx, "/limitations", &limitations); err != nil {
		return nil, fmt.Errorf("client.ListLimitations: %w", err)
	}
	return limitations, nil
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out, true)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out, true)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any, authed bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.logger.Debug("api request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
			if apiErr.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
