package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsafe/safecheck"
	safecheckhttp "github.com/fieldsafe/safecheck/http"
)

func TestRegister(t *testing.T) {
	ts := newTestServer()

	var created *safecheck.User
	ts.UserService.CreateUserFn = func(ctx context.Context, user *safecheck.User, password string) error {
		user.ID = uuid.New()
		created = user
		return nil
	}

	body := `{"email":"new@example.com","displayName":"New Inspector","password":"supersecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echoContentType, echoJSON)
	rec := ts.do(req, false)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created)
	assert.Equal(t, "new@example.com", created.Email)
	assert.Equal(t, safecheck.RoleInspector, created.Role)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer()

	body := `{"email":"not-an-email","displayName":"X","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echoContentType, echoJSON)
	rec := ts.do(req, false)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
	assert.Contains(t, rec.Body.String(), "password")
}

func TestLoginSetsSessionCookie(t *testing.T) {
	ts := newTestServer()
	user := testInspector()

	ts.UserService.VerifyPasswordFn = func(ctx context.Context, email, password string) (*safecheck.User, error) {
		if email != user.Email || password != "supersecret" {
			return nil, safecheck.Unauthorized("Invalid email or password")
		}
		return user, nil
	}
	ts.SessionService.CreateSessionFn = func(ctx context.Context, userID uuid.UUID, duration time.Duration) (*safecheck.Session, error) {
		return &safecheck.Session{
			ID:        uuid.New(),
			UserID:    userID,
			Token:     "fresh-token",
			ExpiresAt: time.Now().Add(duration),
		}, nil
	}

	body := `{"email":"inspector@example.com","password":"supersecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echoContentType, echoJSON)
	rec := ts.do(req, false)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, safecheckhttp.SessionCookieName, cookies[0].Name)
	assert.Equal(t, "fresh-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginBadCredentials(t *testing.T) {
	ts := newTestServer()

	ts.UserService.VerifyPasswordFn = func(ctx context.Context, email, password string) (*safecheck.User, error) {
		return nil, safecheck.Unauthorized("Invalid email or password")
	}

	body := `{"email":"inspector@example.com","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echoContentType, echoJSON)
	rec := ts.do(req, false)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestMe(t *testing.T) {
	ts := newTestServer()
	user := testInspector()
	ts.loginAs(user)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), user.Email)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestMeUnauthenticated(t *testing.T) {
	ts := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := ts.do(req, false)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	ts := newTestServer()
	user := testInspector()
	ts.loginAs(user)

	deleted := ""
	ts.SessionService.DeleteSessionFn = func(ctx context.Context, token string) error {
		deleted = token
		return nil
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test-token", deleted)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

const (
	echoContentType = "Content-Type"
	echoJSON        = "application/json"
)
