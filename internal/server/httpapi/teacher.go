package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/yogabook/internal/server/models"
)

type teacherResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toTeacherResponse(t *models.Teacher) teacherResponse {
	return teacherResponse{
		ID:        t.ID,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (h *Handler) handleFindAllTeachers(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.teachers.FindAll(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	out := make([]teacherResponse, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, toTeacherResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	teacher, err := h.teachers.GetByID(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTeacherResponse(teacher))
}
