package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/naveenspark/yogapath/pkg/domain"
)

type ctxKey int

const userIDKey ctxKey = iota

// tokenClaims is the payload of tokens issued by the mock.
type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(ident domain.Identity) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Email: ident.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TokenTTL)),
			Subject:   strconv.FormatInt(ident.ID, 10),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Server) parseToken(tokenStr string) (int64, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse token subject: %w", err)
	}
	return id, nil
}

// requireAuth rejects requests without a valid bearer token for a known user.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		userID, err := s.parseToken(tokenStr)
		if err != nil {
			s.logger.Debug("token rejected", zap.Error(err))
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		s.store.mu.Lock()
		_, exists := s.store.users[userID]
		s.store.mu.Unlock()
		if !exists {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64) //nolint:errcheck // set by requireAuth
	return id
}

type registerBody struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email_simple"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginBody struct {
	Email    string `json:"email" validate:"required,email_simple"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if !s.bind(w, r, &body) {
		return
	}
	ident, err := s.AddUser(body.Name, body.Email, body.Password)
	if errors.Is(err, ErrEmailTaken) {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		s.logger.Error("register", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	s.respondWithToken(w, http.StatusCreated, ident)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if !s.bind(w, r, &body) {
		return
	}
	s.store.mu.Lock()
	rec, ok := s.store.users[s.store.usersByEmail[normalizeEmail(body.Email)]]
	s.store.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(body.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	s.respondWithToken(w, http.StatusOK, rec.identity)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	rec := s.store.users[currentUser(r)]
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, rec.identity)
}

func (s *Server) respondWithToken(w http.ResponseWriter, status int, ident domain.Identity) {
	tok, err := s.issueToken(ident)
	if err != nil {
		s.logger.Error("issue token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Could not issue token")
		return
	}
	writeJSON(w, status, domain.AuthResponse{
		Token:  tok,
		UserID: ident.ID,
		Email:  ident.Email,
		Name:   ident.Name,
	})
}

// ErrEmailTaken is returned by AddUser for a duplicate email.
var ErrEmailTaken = errors.New("email already registered")

// AddUser creates an account directly, bypassing HTTP. Tests use it to seed
// users.
func (s *Server) AddUser(name, email, password string) (domain.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.Cost)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("mockapi.AddUser: hash password: %w", err)
	}
	key := normalizeEmail(email)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, taken := s.store.usersByEmail[key]; taken {
		return domain.Identity{}, ErrEmailTaken
	}
	ident := domain.Identity{
		ID:        s.store.id(),
		Name:      strings.TrimSpace(name),
		Email:     key,
		Enabled:   true,
		CreatedAt: domain.NewTimestamp(s.now()),
	}
	s.store.users[ident.ID] = &userRecord{identity: ident, passwordHash: hash}
	s.store.usersByEmail[key] = ident.ID
	s.logger.Info("user created", zap.Int64("user_id", ident.ID))
	return ident, nil
}

// TokenFor issues a token for an existing user, bypassing the password.
func (s *Server) TokenFor(userID int64) (string, error) {
	s.store.mu.Lock()
	rec, ok := s.store.users[userID]
	s.store.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("mockapi.TokenFor: unknown user %d", userID)
	}
	return s.issueToken(rec.identity)
}
