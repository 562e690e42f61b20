package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/go-posts/internal/config"
	"github.com/deppfellow/go-posts/internal/errs"
	"github.com/deppfellow/go-posts/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{},
		Logger: &logger,
	}
}

func TestRequestID_GeneratesAndReuses(t *testing.T) {
	e := echo.New()
	handler := RequestID()(func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	generated := rec.Header().Get(RequestIDHeader)
	if generated == "" || rec.Body.String() != generated {
		t.Fatalf("expected generated id in header and context, got %q / %q", generated, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	_ = handler(e.NewContext(req, rec))
	if rec.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("expected incoming id to be reused")
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body must be an HTTPError: %v (%s)", err, rec.Body.String())
	}
	return body
}

func TestGlobalErrorHandler(t *testing.T) {
	global := NewGlobalMiddlewares(newTestServer())
	postNotFound := "POST_NOT_FOUND"

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "http error passes through",
			err:        errs.NewNotFoundError("No post found", true, &postNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "POST_NOT_FOUND",
		},
		{
			name:       "wrapped http error",
			err:        fmt.Errorf("like: %w", errs.NewUnauthorizedError("User not authorized", true, nil)),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "unknown route",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "echo method not allowed",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "METHOD_NOT_ALLOWED",
		},
		{
			name:       "missing row",
			err:        fmt.Errorf("table:posts: post_id=1: %w", pgx.ErrNoRows),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/posts", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body := decodeError(t, rec)
			if body.Code != tt.wantCode || body.Status != tt.wantStatus {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestGlobalErrorHandler_KeepsFieldErrors(t *testing.T) {
	global := NewGlobalMiddlewares(newTestServer())
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/posts", nil), rec)

	global.GlobalErrorHandler(errs.NewBadRequestError("Validation failed", true, nil,
		[]errs.FieldError{{Field: "text", Error: "is required"}}, nil), c)

	body := decodeError(t, rec)
	if len(body.Errors) != 1 || body.Errors[0].Field != "text" {
		t.Fatalf("expected field errors to be kept: %+v", body)
	}
}

func TestGetLogger_FallsBackToNop(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if GetLogger(c) == nil {
		t.Fatalf("expected a logger")
	}
	if GetUserID(c) != "" {
		t.Fatalf("expected no user id")
	}

	c.Set(UserIDKey, "user_1")
	if GetUserID(c) != "user_1" {
		t.Fatalf("expected user id from context")
	}
}

func TestEnhanceContext_StoresLogger(t *testing.T) {
	ce := NewContextEnhancer(newTestServer())
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(RequestIDKey, "req-1")

	err := ce.EnhanceContext()(func(c echo.Context) error {
		stored, ok := c.Get(LoggerKey).(*zerolog.Logger)
		if !ok {
			t.Fatalf("expected logger on echo context")
		}
		if GetLogger(c) != stored {
			t.Fatalf("expected GetLogger to return the stored logger")
		}
		return nil
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTracing_PassThroughWithoutApplication(t *testing.T) {
	called := false
	h := NewTracing(nil).Middleware()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusNoContent)
	})

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if err := h(c); err != nil || !called {
		t.Fatalf("expected next to run, err=%v called=%v", err, called)
	}
}
