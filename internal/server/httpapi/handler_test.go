package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/yogabook/internal/common"
	"github.com/dmitrijs2005/yogabook/internal/logging"
	"github.com/dmitrijs2005/yogabook/internal/server/models"
)

type fakeAuth struct {
	loginFn    func(ctx context.Context, email, password string) (*models.Principal, string, error)
	registerFn func(ctx context.Context, email, firstName, lastName, password string) (*models.User, error)
	validateFn func(tokenString string) (string, bool)
	resolveFn  func(ctx context.Context, subject string) (*models.Principal, error)
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*models.Principal, string, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuth) Register(ctx context.Context, email, firstName, lastName, password string) (*models.User, error) {
	return f.registerFn(ctx, email, firstName, lastName, password)
}

func (f *fakeAuth) ValidateToken(tokenString string) (string, bool) {
	if f.validateFn == nil {
		return "", false
	}
	return f.validateFn(tokenString)
}

func (f *fakeAuth) ResolvePrincipal(ctx context.Context, subject string) (*models.Principal, error) {
	if f.resolveFn == nil {
		return nil, common.ErrNotFound
	}
	return f.resolveFn(ctx, subject)
}

type fakeSessions struct {
	createFn      func(ctx context.Context, session *models.Session) (*models.Session, error)
	getFn         func(ctx context.Context, id int64) (*models.Session, error)
	findAllFn     func(ctx context.Context) ([]*models.Session, error)
	updateFn      func(ctx context.Context, id int64, replacement *models.Session) (*models.Session, error)
	deleteFn      func(ctx context.Context, id int64) error
	participateFn func(ctx context.Context, sessionID, userID int64) error
	withdrawFn    func(ctx context.Context, sessionID, userID int64) error
}

func (f *fakeSessions) Create(ctx context.Context, session *models.Session) (*models.Session, error) {
	return f.createFn(ctx, session)
}

func (f *fakeSessions) GetByID(ctx context.Context, id int64) (*models.Session, error) {
	return f.getFn(ctx, id)
}

func (f *fakeSessions) FindAll(ctx context.Context) ([]*models.Session, error) {
	return f.findAllFn(ctx)
}

func (f *fakeSessions) Update(ctx context.Context, id int64, replacement *models.Session) (*models.Session, error) {
	return f.updateFn(ctx, id, replacement)
}

func (f *fakeSessions) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeSessions) Participate(ctx context.Context, sessionID, userID int64) error {
	return f.participateFn(ctx, sessionID, userID)
}

func (f *fakeSessions) NoLongerParticipate(ctx context.Context, sessionID, userID int64) error {
	return f.withdrawFn(ctx, sessionID, userID)
}

type fakeTeachers struct {
	getFn     func(ctx context.Context, id int64) (*models.Teacher, error)
	findAllFn func(ctx context.Context) ([]*models.Teacher, error)
}

func (f *fakeTeachers) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return f.getFn(ctx, id)
}

func (f *fakeTeachers) FindAll(ctx context.Context) ([]*models.Teacher, error) {
	return f.findAllFn(ctx)
}

type fakeUsers struct {
	getFn    func(ctx context.Context, id int64) (*models.User, error)
	deleteFn func(ctx context.Context, principal *models.Principal, id int64) error
}

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return f.getFn(ctx, id)
}

func (f *fakeUsers) Delete(ctx context.Context, principal *models.Principal, id int64) error {
	return f.deleteFn(ctx, principal, id)
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// authAs wires the fake auth so that the token "valid-token" resolves to
// the given principal.
func authAs(a *fakeAuth, p *models.Principal) {
	a.validateFn = func(tokenString string) (string, bool) {
		if tokenString == "valid-token" {
			return p.Email, true
		}
		return "", false
	}
	a.resolveFn = func(ctx context.Context, subject string) (*models.Principal, error) {
		if subject == p.Email {
			return p, nil
		}
		return nil, common.ErrNotFound
	}
}

func newTestHandler() (*Handler, *fakeAuth, *fakeSessions, *fakeTeachers, *fakeUsers) {
	auth := &fakeAuth{}
	sessions := &fakeSessions{}
	teachers := &fakeTeachers{}
	users := &fakeUsers{}
	h := NewHandler(testLogger(), auth, sessions, teachers, users)
	return h, auth, sessions, teachers, users
}

func doRequest(h *Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	h.Routes().ServeHTTP(resp, req)
	return resp
}

func TestHandleLogin_Success(t *testing.T) {
	h, auth, _, _, _ := newTestHandler()
	auth.loginFn = func(ctx context.Context, email, password string) (*models.Principal, string, error) {
		require.Equal(t, "yoga@studio.com", email)
		require.Equal(t, "test!1234", password)
		return &models.Principal{ID: 42, Email: email, FirstName: "Admin", LastName: "Admin", Admin: true}, "issued-token", nil
	}

	resp := doRequest(h, http.MethodPost, "/api/auth/login", "",
		loginRequest{Email: "yoga@studio.com", Password: "test!1234"})

	require.Equal(t, http.StatusOK, resp.Code)
	var body tokenResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "issued-token", body.Token)
	assert.Equal(t, "Bearer", body.Type)
	assert.Equal(t, int64(42), body.ID)
	assert.Equal(t, "yoga@studio.com", body.Username)
	assert.True(t, body.Admin)
}

func TestHandleLogin_BadCredentials(t *testing.T) {
	h, auth, _, _, _ := newTestHandler()
	auth.loginFn = func(ctx context.Context, email, password string) (*models.Principal, string, error) {
		return nil, "", common.ErrAuthenticationFailed
	}

	resp := doRequest(h, http.MethodPost, "/api/auth/login", "",
		loginRequest{Email: "yoga@studio.com", Password: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHandleLogin_MissingFields(t *testing.T) {
	h, _, _, _, _ := newTestHandler()

	resp := doRequest(h, http.MethodPost, "/api/auth/login", "",
		loginRequest{Email: "", Password: ""})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleLogin_InvalidJSON(t *testing.T) {
	h, _, _, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte("{not json")))
	resp := httptest.NewRecorder()
	h.Routes().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleRegister_Success(t *testing.T) {
	h, auth, _, _, _ := newTestHandler()
	auth.registerFn = func(ctx context.Context, email, firstName, lastName, password string) (*models.User, error) {
		return &models.User{ID: 1, Email: email, FirstName: firstName, LastName: lastName}, nil
	}

	resp := doRequest(h, http.MethodPost, "/api/auth/register", "",
		registerRequest{Email: "new@studio.com", FirstName: "Anna", LastName: "Smith", Password: "secret1"})

	require.Equal(t, http.StatusOK, resp.Code)
	var body messageResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "user registered successfully", body.Message)
}

func TestHandleRegister_EmailTaken(t *testing.T) {
	h, auth, _, _, _ := newTestHandler()
	auth.registerFn = func(ctx context.Context, email, firstName, lastName, password string) (*models.User, error) {
		return nil, common.ErrAlreadyExists
	}

	resp := doRequest(h, http.MethodPost, "/api/auth/register", "",
		registerRequest{Email: "taken@studio.com", FirstName: "Anna", LastName: "Smith", Password: "secret1"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  registerRequest
	}{
		{"missing email", registerRequest{FirstName: "Anna", LastName: "Smith", Password: "secret1"}},
		{"bad email", registerRequest{Email: "not-an-email", FirstName: "Anna", LastName: "Smith", Password: "secret1"}},
		{"short first name", registerRequest{Email: "a@b.com", FirstName: "An", LastName: "Smith", Password: "secret1"}},
		{"short last name", registerRequest{Email: "a@b.com", FirstName: "Anna", LastName: "Sm", Password: "secret1"}},
		{"short password", registerRequest{Email: "a@b.com", FirstName: "Anna", LastName: "Smith", Password: "12345"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _, _, _ := newTestHandler()
			resp := doRequest(h, http.MethodPost, "/api/auth/register", "", tt.req)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
		})
	}
}

func TestHandleGetUser(t *testing.T) {
	h, auth, _, _, users := newTestHandler()
	principal := &models.Principal{ID: 7, Email: "me@studio.com"}
	authAs(auth, principal)
	users.getFn = func(ctx context.Context, id int64) (*models.User, error) {
		require.Equal(t, int64(7), id)
		return &models.User{ID: 7, Email: "me@studio.com", FirstName: "Me", LastName: "Myself"}, nil
	}

	resp := doRequest(h, http.MethodGet, "/api/user/7", "valid-token", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	var body userResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.ID)
	assert.Equal(t, "me@studio.com", body.Email)
}

func TestHandleGetUser_NotFound(t *testing.T) {
	h, auth, _, _, users := newTestHandler()
	authAs(auth, &models.Principal{ID: 7, Email: "me@studio.com"})
	users.getFn = func(ctx context.Context, id int64) (*models.User, error) {
		return nil, common.ErrNotFound
	}

	resp := doRequest(h, http.MethodGet, "/api/user/999", "valid-token", nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandleGetUser_BadID(t *testing.T) {
	h, auth, _, _, _ := newTestHandler()
	authAs(auth, &models.Principal{ID: 7, Email: "me@studio.com"})

	resp := doRequest(h, http.MethodGet, "/api/user/abc", "valid-token", nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleDeleteUser_NotSelf(t *testing.T) {
	h, auth, _, _, users := newTestHandler()
	authAs(auth, &models.Principal{ID: 7, Email: "me@studio.com"})
	users.deleteFn = func(ctx context.Context, principal *models.Principal, id int64) error {
		require.NotNil(t, principal)
		require.Equal(t, int64(7), principal.ID)
		return common.ErrAuthorizationFailed
	}

	resp := doRequest(h, http.MethodDelete, "/api/user/8", "valid-token", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHandleDeleteUser_Self(t *testing.T) {
	h, auth, _, _, users := newTestHandler()
	authAs(auth, &models.Principal{ID: 7, Email: "me@studio.com"})
	users.deleteFn = func(ctx context.Context, principal *models.Principal, id int64) error {
		return nil
	}

	resp := doRequest(h, http.MethodDelete, "/api/user/7", "valid-token", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestHandleFindAllTeachers(t *testing.T) {
	h, auth, _, teachers, _ := newTestHandler()
	authAs(auth, &models.Principal{ID: 7, Email: "me@studio.com"})
	teachers.findAllFn = func(ctx context.Context) ([]*models.Teacher, error) {
		return []*models.Teacher{
			{ID: 1, FirstName: "Margot", LastName: "DELAHAYE"},
			{ID: 2, FirstName: "Hélène", LastName: "THIERCELIN"},
		}, nil
	}

	resp := doRequest(h, http.MethodGet, "/api/teacher", "valid-token", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	var body []teacherResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "Margot", body[0].FirstName)
}

func TestHandleGetTeacher_NotFound(t *testing.T) {
	h, auth, _, teachers, _ := newTestHandler()
	authAs(auth, &models.Principal{ID: 7, Email: "me@studio.com"})
	teachers.getFn = func(ctx context.Context, id int64) (*models.Teacher, error) {
		return nil, common.ErrNotFound
	}

	resp := doRequest(h, http.MethodGet, "/api/teacher/99", "valid-token", nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandleHealth(t *testing.T) {
	h, _, _, _, _ := newTestHandler()

	resp := doRequest(h, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
}
