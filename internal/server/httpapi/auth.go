package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	principal, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		Type:      "Bearer",
		ID:        principal.ID,
		Username:  principal.Email,
		FirstName: principal.FirstName,
		LastName:  principal.LastName,
		Admin:     principal.Admin,
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}
	if msg := validateRegistration(&req); msg != "" {
		writeError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	if _, err := h.auth.Register(r.Context(), req.Email, req.FirstName, req.LastName, req.Password); err != nil {
		h.serviceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "user registered successfully"})
}

func validateRegistration(req *registerRequest) string {
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	switch {
	case req.Email == "" || len(req.Email) > 50 || !strings.Contains(req.Email, "@"):
		return "a valid email of at most 50 characters is required"
	case len(req.FirstName) < 3 || len(req.FirstName) > 20:
		return "firstName must be 3-20 characters"
	case len(req.LastName) < 3 || len(req.LastName) > 20:
		return "lastName must be 3-20 characters"
	case len(req.Password) < 6 || len(req.Password) > 40:
		return "password must be 6-40 characters"
	}
	return ""
}
