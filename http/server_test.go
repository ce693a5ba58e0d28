package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"

	"github.com/fieldsafe/safecheck"
	safecheckhttp "github.com/fieldsafe/safecheck/http"
	"github.com/fieldsafe/safecheck/mock"
)

// testServer bundles a server with its mock services so tests can program
// per-call behavior.
type testServer struct {
	*safecheckhttp.Server

	FacilityService   *mock.FacilityService
	TemplateService   *mock.TemplateService
	InspectionService *mock.InspectionService
	UserService       *mock.UserService
	SessionService    *mock.SessionService
	FileStorage       *mock.FileStorage
	EmailService      *mock.EmailService
	ReportGenerator   *mock.ReportGenerator
}

func newTestServer() *testServer {
	ts := &testServer{
		FacilityService:   &mock.FacilityService{},
		TemplateService:   &mock.TemplateService{},
		InspectionService: &mock.InspectionService{},
		UserService:       &mock.UserService{},
		SessionService:    &mock.SessionService{},
		FileStorage:       &mock.FileStorage{},
		EmailService:      &mock.EmailService{},
		ReportGenerator:   &mock.ReportGenerator{},
	}
	ts.Server = safecheckhttp.NewServer(safecheckhttp.Config{
		Addr:              ":0",
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		FacilityService:   ts.FacilityService,
		TemplateService:   ts.TemplateService,
		InspectionService: ts.InspectionService,
		UserService:       ts.UserService,
		SessionService:    ts.SessionService,
		FileStorage:       ts.FileStorage,
		EmailService:      ts.EmailService,
		ReportGenerator:   ts.ReportGenerator,
	})
	return ts
}

// loginAs programs the session service to authenticate requests carrying the
// test session cookie as the given user.
func (ts *testServer) loginAs(user *safecheck.User) {
	ts.SessionService.FindSessionByTokenFn = func(ctx context.Context, token string) (*safecheck.Session, error) {
		if token != "test-token" {
			return nil, safecheck.NotFound("Session not found")
		}
		return &safecheck.Session{
			ID:        uuid.New(),
			UserID:    user.ID,
			Token:     token,
			ExpiresAt: time.Now().Add(time.Hour),
			User:      user,
		}, nil
	}
}

// do dispatches a request through the echo router and returns the recorder.
func (ts *testServer) do(req *http.Request, authenticated bool) *httptest.ResponseRecorder {
	if authenticated {
		req.AddCookie(&http.Cookie{Name: safecheckhttp.SessionCookieName, Value: "test-token"})
	}
	rec := httptest.NewRecorder()
	ts.Echo().ServeHTTP(rec, req)
	return rec
}

func testInspector() *safecheck.User {
	return &safecheck.User{
		ID:          uuid.New(),
		Email:       "inspector@example.com",
		DisplayName: "Dana Reyes",
		Role:        safecheck.RoleInspector,
	}
}

func testAdmin() *safecheck.User {
	return &safecheck.User{
		ID:          uuid.New(),
		Email:       "admin@example.com",
		DisplayName: "Sam Okafor",
		Role:        safecheck.RoleAdmin,
	}
}
