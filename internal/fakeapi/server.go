package fakeapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/crypto/bcrypt"
)

// HealthTimestamp is the fixed timestamp reported by /health.
const HealthTimestamp = "2023-01-01T00:00:00Z"

// Error codes of the backend's error envelope.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeRegistration      = "REGISTRATION_ERROR"
	CodeLogin             = "LOGIN_ERROR"
	CodeMissingAuthHeader = "MISSING_AUTH_HEADER"
	CodeInvalidAuthFormat = "INVALID_AUTH_FORMAT"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeUpdate            = "UPDATE_ERROR"
	CodeDelete            = "DELETE_ERROR"
	CodeInternal          = "INTERNAL_ERROR"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Server struct {
	store    *store
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	origins  []string
	log      logging.Logger
}

type Option func(*Server)

func WithSecret(secret string) Option {
	return func(s *Server) { s.secret = []byte(secret) }
}

// WithBcryptCost lowers hashing cost, which keeps tests fast.
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.store.cost = cost }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
		s.store.now = now
	}
}

func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.tokenTTL = d }
}

// WithAllowedOrigins sets the origins allowed by CORS.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.log = l }
}

func New(opts ...Option) *Server {
	s := &Server{
		store:    newStore(bcrypt.DefaultCost, time.Now),
		secret:   []byte("default-secret-key"),
		tokenTTL: DefaultTokenTTL,
		now:      time.Now,
		origins:  []string{"http://localhost:3000"},
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed creates an account directly, bypassing HTTP.
func (s *Server) Seed(email, name, password string) (*models.User, error) {
	u, err := s.store.create(email, name, password)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Handler returns the routed API wrapped in CORS.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	v1.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)

	users := v1.PathPrefix("/users").Subrouter()
	users.Use(s.requireToken)
	users.HandleFunc("", s.listUsers).Methods(http.MethodGet)
	users.HandleFunc("/{id}", s.getUser).Methods(http.MethodGet)
	users.HandleFunc("/{id}", s.updateUser).Methods(http.MethodPut)
	users.HandleFunc("/{id}", s.deleteUser).Methods(http.MethodDelete)

	r.Use(s.logRequests)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug(r.Context(), "request served",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-ID"),
			"duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg, Code: code})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok", Timestamp: HealthTimestamp})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", CodeValidation)
		return
	}

	u, err := s.store.create(req.Email, req.Name, req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), CodeRegistration)
		return
	}
	s.respondAuth(w, http.StatusCreated, u)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", CodeValidation)
		return
	}

	u, err := s.store.authenticate(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error(), CodeLogin)
		return
	}
	s.respondAuth(w, http.StatusOK, u)
}

func (s *Server) respondAuth(w http.ResponseWriter, status int, u models.User) {
	token, err := s.issueToken(u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", CodeInternal)
		return
	}
	writeJSON(w, status, models.AuthResponse{User: &u, Token: token})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header required", CodeMissingAuthHeader)
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeError(w, http.StatusUnauthorized, "Bearer token required", CodeInvalidAuthFormat)
			return
		}
		if _, err := s.parseToken(raw); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token", CodeInvalidToken)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err1 := queryInt(q.Get("page"))
	limit, err2 := queryInt(q.Get("limit"))
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "Invalid query parameters", CodeValidation)
		return
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	writeJSON(w, http.StatusOK, s.store.list(page, limit))
}

func queryInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID", CodeValidation)
		return 0, false
	}
	return id, true
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	u, err := s.store.get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error(), CodeUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", CodeValidation)
		return
	}

	u, err := s.store.update(id, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errUserNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error(), CodeUpdate)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.delete(id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, errUserNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error(), CodeDelete)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
