package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/yogabook/internal/server/models"
)

type sessionRequest struct {
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	TeacherID   *int64    `json:"teacher_id"`
	Users       []int64   `json:"users"`
}

type sessionResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	TeacherID   *int64    `json:"teacher_id"`
	Users       []int64   `json:"users"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toSessionResponse(s *models.Session) sessionResponse {
	users := s.Users
	if users == nil {
		users = []int64{}
	}
	return sessionResponse{
		ID:          s.ID,
		Name:        s.Name,
		Date:        s.Date,
		Description: s.Description,
		TeacherID:   s.TeacherID,
		Users:       users,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// decodeSession parses and validates the request body, reporting ok=false
// after writing a 400 response.
func (h *Handler) decodeSession(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return nil, false
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	switch {
	case req.Name == "":
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return nil, false
	case req.Date.IsZero():
		writeError(w, http.StatusBadRequest, "invalid_request", "date is required")
		return nil, false
	case req.Description == "" || len(req.Description) > 2500:
		writeError(w, http.StatusBadRequest, "invalid_request", "description must be 1-2500 characters")
		return nil, false
	}
	return &models.Session{
		Name:        req.Name,
		Date:        req.Date,
		Description: req.Description,
		TeacherID:   req.TeacherID,
		Users:       req.Users,
	}, true
}

func (h *Handler) handleFindAllSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.FindAll(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	out := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	session, err := h.sessions.GetByID(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.decodeSession(w, r)
	if !ok {
		return
	}
	created, err := h.sessions.Create(r.Context(), session)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(created))
}

func (h *Handler) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	session, ok := h.decodeSession(w, r)
	if !ok {
		return
	}
	updated, err := h.sessions.Update(r.Context(), id, session)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(updated))
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.sessions.Delete(r.Context(), id); err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "session deleted"})
}

func (h *Handler) handleParticipate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	if err := h.sessions.Participate(r.Context(), sessionID, userID); err != nil {
		h.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleNoLongerParticipate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}
	if err := h.sessions.NoLongerParticipate(r.Context(), sessionID, userID); err != nil {
		h.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
