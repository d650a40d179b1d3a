// Package mockapi is an in-memory stand-in for the Yoga Path backend. It
// serves the same REST surface the client consumes so the client can be run
// and tested without the real service.
package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/naveenspark/yogapath/internal/form"
)

// Options configures a Server.
type Options struct {
	// Secret signs issued tokens.
	Secret string
	// Cost is the bcrypt cost for password hashes. Zero means bcrypt.DefaultCost.
	Cost int
	// TokenTTL is how long issued tokens stay valid. Zero means 24h.
	TokenTTL time.Duration
	// Prefix is the path the API is mounted under, e.g. "/api".
	Prefix string
	Logger *zap.Logger
	// Now overrides the clock.
	Now func() time.Time
}

// Server is the mock backend.
type Server struct {
	opts     Options
	secret   []byte
	logger   *zap.Logger
	store    *store
	validate *validator.Validate
	router   *mux.Router
}

// New builds a Server with seeded reference data and no users.
func New(opts Options) *Server {
	if opts.Secret == "" {
		opts.Secret = "yogapath-dev-secret"
	}
	if opts.Cost == 0 {
		opts.Cost = bcrypt.DefaultCost
	}
	if opts.TokenTTL == 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Prefix = strings.TrimRight(opts.Prefix, "/")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := form.RegisterEmailRule(v); err != nil {
		panic(err)
	}

	s := &Server{
		opts:     opts,
		secret:   []byte(opts.Secret),
		logger:   opts.Logger.Named("mockapi"),
		store:    newStore(),
		validate: v,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) now() time.Time {
	return s.opts.Now().UTC()
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID, s.accessLog)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	api := r
	if s.opts.Prefix != "" {
		api = r.PathPrefix(s.opts.Prefix).Subrouter()
	}

	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api.HandleFunc("/auth/register", s.handleRegister).Methods("POST")
	api.HandleFunc("/auth/login", s.handleLogin).Methods("POST")

	api.HandleFunc("/goals", s.handleListGoals).Methods("GET")
	api.HandleFunc("/yoga-styles", s.handleListStyles).Methods("GET")
	api.HandleFunc("/limitations", s.handleListLimitations).Methods("GET")

	authed := func(h http.HandlerFunc) http.Handler { return s.requireAuth(h) }
	api.Handle("/auth/verify", authed(s.handleVerify)).Methods("GET")

	api.Handle("/profiles", authed(s.handleCreateProfile)).Methods("POST")
	api.Handle("/profiles/{id:[0-9]+}", authed(s.handleUpdateProfile)).Methods("PUT")
	api.Handle("/profiles/user/{userId:[0-9]+}", authed(s.handleGetProfileByUser)).Methods("GET")

	api.Handle("/recommendations/profile/{profileId:[0-9]+}", authed(s.handleListRecommendations)).Methods("GET")
	api.Handle("/recommendations/profile/{profileId:[0-9]+}/latest", authed(s.handleLatestRecommendation)).Methods("GET")
	api.Handle("/recommendations/generate/{profileId:[0-9]+}", authed(s.handleGenerateRecommendation)).Methods("POST")

	api.Handle("/practice-logs", authed(s.handleCreateLog)).Methods("POST")
	api.Handle("/practice-logs/{id:[0-9]+}", authed(s.handleUpdateLog)).Methods("PUT")
	api.Handle("/practice-logs/{id:[0-9]+}", authed(s.handleDeleteLog)).Methods("DELETE")
	api.Handle("/practice-logs/user/{userId:[0-9]+}", authed(s.handleListLogs)).Methods("GET")

	return r
}

// requestID echoes the caller's X-Request-ID or assigns one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("request_id", r.Header.Get("X-Request-ID")),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// bind decodes the JSON body into v and validates it, writing a 400 on
// failure.
func (s *Server) bind(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed JSON body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email_simple":
		return fe.Field() + " must be a valid email"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	}
	return fe.Field() + " is invalid"
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func pathID(r *http.Request, key string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[key], 10, 64) //nolint:errcheck // route regexp guarantees digits
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
