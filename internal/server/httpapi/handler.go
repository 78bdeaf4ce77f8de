// Package httpapi exposes the booking backend over REST. All routes except
// registration, login and the health probe require a valid bearer token.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/yogabook/internal/common"
	"github.com/dmitrijs2005/yogabook/internal/logging"
	"github.com/dmitrijs2005/yogabook/internal/server/models"
)

// AuthService authenticates credentials and resolves token subjects.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.Principal, string, error)
	Register(ctx context.Context, email, firstName, lastName, password string) (*models.User, error)
	ValidateToken(tokenString string) (string, bool)
	ResolvePrincipal(ctx context.Context, subject string) (*models.Principal, error)
}

// SessionService manages bookable sessions and their membership.
type SessionService interface {
	Create(ctx context.Context, session *models.Session) (*models.Session, error)
	GetByID(ctx context.Context, id int64) (*models.Session, error)
	FindAll(ctx context.Context) ([]*models.Session, error)
	Update(ctx context.Context, id int64, replacement *models.Session) (*models.Session, error)
	Delete(ctx context.Context, id int64) error
	Participate(ctx context.Context, sessionID, userID int64) error
	NoLongerParticipate(ctx context.Context, sessionID, userID int64) error
}

// TeacherService reads the teacher catalogue.
type TeacherService interface {
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	FindAll(ctx context.Context) ([]*models.Teacher, error)
}

// UserService reads and removes accounts.
type UserService interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, principal *models.Principal, id int64) error
}

type Handler struct {
	logger   logging.Logger
	auth     AuthService
	sessions SessionService
	teachers TeacherService
	users    UserService
}

func NewHandler(logger logging.Logger, auth AuthService, sessions SessionService, teachers TeacherService, users UserService) *Handler {
	return &Handler{
		logger:   logger,
		auth:     auth,
		sessions: sessions,
		teachers: teachers,
		users:    users,
	}
}

// Routes assembles the mux and wraps it with the request id, logging and
// principal resolution middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("POST /api/auth/register", h.handleRegister)
	mux.HandleFunc("POST /api/auth/login", h.handleLogin)

	mux.Handle("GET /api/user/{id}", h.requireAuth(h.handleGetUser))
	mux.Handle("DELETE /api/user/{id}", h.requireAuth(h.handleDeleteUser))

	mux.Handle("GET /api/teacher", h.requireAuth(h.handleFindAllTeachers))
	mux.Handle("GET /api/teacher/{id}", h.requireAuth(h.handleGetTeacher))

	mux.Handle("GET /api/session", h.requireAuth(h.handleFindAllSessions))
	mux.Handle("POST /api/session", h.requireAuth(h.handleCreateSession))
	mux.Handle("GET /api/session/{id}", h.requireAuth(h.handleGetSession))
	mux.Handle("PUT /api/session/{id}", h.requireAuth(h.handleUpdateSession))
	mux.Handle("DELETE /api/session/{id}", h.requireAuth(h.handleDeleteSession))
	mux.Handle("POST /api/session/{id}/participate/{userId}", h.requireAuth(h.handleParticipate))
	mux.Handle("DELETE /api/session/{id}/participate/{userId}", h.requireAuth(h.handleNoLongerParticipate))

	return h.requestID(h.logRequests(h.resolvePrincipal(mux)))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type errorResponse struct {
	Error responseError `json:"error"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// pathID parses the named numeric path segment, reporting ok=false after
// writing a 400 response.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", name+" must be a number")
		return 0, false
	}
	return id, true
}

func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "error", err)
	}
	writeError(w, status, code, msg)
}

// mapError translates service sentinels to HTTP responses. Authorization
// failures map to 401 rather than 403, matching what clients of the
// original API already expect.
func mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, "not_found", "resource not found"
	case errors.Is(err, common.ErrBadRequest):
		return http.StatusBadRequest, "bad_request", "request cannot be satisfied in the current state"
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusBadRequest, "already_exists", "resource already exists"
	case errors.Is(err, common.ErrAuthenticationFailed):
		return http.StatusUnauthorized, "unauthorized", "invalid credentials"
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthorized", "authentication required"
	case errors.Is(err, common.ErrAuthorizationFailed):
		return http.StatusUnauthorized, "unauthorized", "operation not permitted"
	default:
		return http.StatusInternalServerError, "internal_error", "internal server error"
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Error: responseError{
			Code:    code,
			Message: message,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}
