// Package session owns the authentication lifecycle: the persisted token,
// the verified identity, and the loading flag route guards consult.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/naveenspark/yogapath/pkg/domain"
)

// Authenticator is the slice of the API client the session needs.
type Authenticator interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
	Verify(ctx context.Context) (*domain.Identity, error)
}

// State is a snapshot of the session.
type State struct {
	User      *domain.Identity
	IsLoading bool
}

// IsAuthenticated reports whether a user is present.
func (s State) IsAuthenticated() bool {
	return s.User != nil
}

// Store is the only writer of the persisted token. It is safe for
// concurrent use.
type Store struct {
	auth   Authenticator
	tokens TokenStore
	logger *zap.Logger

	once    sync.Once
	mu      sync.RWMutex
	user    *domain.Identity
	loading bool
}

// New creates a Store. The session starts loading until Initialize runs.
func New(auth Authenticator, tokens TokenStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		auth:    auth,
		tokens:  tokens,
		logger:  logger.Named("session"),
		loading: true,
	}
}

// Initialize restores the session from the persisted token. Without a token
// it makes no network call. A token that fails verification for any reason
// is removed. Only the first call has effect. If Login, Register or Logout
// replaced the token while Verify was in flight, their result stands.
func (s *Store) Initialize(ctx context.Context) State {
	s.once.Do(func() {
		tok := s.tokens.Token()
		if tok == "" {
			s.finish(tok, nil)
			return
		}
		ident, err := s.auth.Verify(ctx)
		if err == nil && (ident == nil || ident.ID == 0) {
			err = errors.New("verify returned no identity")
		}
		if err != nil {
			s.logger.Warn("stored token rejected", zap.Error(err))
			s.finish(tok, nil)
			return
		}
		s.finish(tok, ident)
	})
	return s.State()
}

// finish applies the outcome of verifying tok. It changes nothing but the
// loading flag when the stored token is no longer tok.
func (s *Store) finish(tok string, user *domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if s.tokens.Token() != tok || (tok == "" && s.user != nil) {
		s.logger.Debug("session changed during verify, keeping it")
		return
	}
	if user == nil && tok != "" {
		if err := s.tokens.Clear(); err != nil {
			s.logger.Error("clear token", zap.Error(err))
		}
	}
	if user != nil {
		s.logger.Info("session restored", zap.Int64("user_id", user.ID))
	}
	s.user = user
}

// Login authenticates, persists the returned token and sets the user.
// On failure nothing changes.
func (s *Store) Login(ctx context.Context, req domain.LoginRequest) (domain.Identity, error) {
	resp, err := s.auth.Login(ctx, req)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("session.Login: %w", err)
	}
	ident, err := s.establish(resp)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("session.Login: %w", err)
	}
	s.logger.Info("logged in", zap.Int64("user_id", ident.ID))
	return ident, nil
}

// Register creates an account and signs in as it.
func (s *Store) Register(ctx context.Context, req domain.RegisterRequest) (domain.Identity, error) {
	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("session.Register: %w", err)
	}
	ident, err := s.establish(resp)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("session.Register: %w", err)
	}
	s.logger.Info("registered", zap.Int64("user_id", ident.ID))
	return ident, nil
}

func (s *Store) establish(resp *domain.AuthResponse) (domain.Identity, error) {
	if resp == nil || resp.Token == "" {
		return domain.Identity{}, fmt.Errorf("empty auth response")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tokens.Save(resp.Token); err != nil {
		return domain.Identity{}, err
	}
	ident := resp.Identity()
	s.user = &ident
	s.loading = false
	return ident, nil
}

// Logout clears the token and the user. A storage error is logged only.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tokens.Clear(); err != nil {
		s.logger.Error("clear token", zap.Error(err))
	}
	s.user = nil
	s.loading = false
	s.logger.Info("logged out")
}

// State returns a snapshot. The identity is copied.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{IsLoading: s.loading}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

// Token returns the persisted token so the store can serve as the API
// client's token source.
func (s *Store) Token() string {
	return s.tokens.Token()
}

// ExpiresAt returns the exp claim of the current token without verifying
// its signature. It is for display only.
func (s *Store) ExpiresAt() (time.Time, bool) {
	tok := s.tokens.Token()
	if tok == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
