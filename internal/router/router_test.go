package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/go-posts/internal/config"
	"github.com/deppfellow/go-posts/internal/errs"
	"github.com/deppfellow/go-posts/internal/handler"
	"github.com/deppfellow/go-posts/internal/middleware"
	"github.com/deppfellow/go-posts/internal/model"
	"github.com/deppfellow/go-posts/internal/server"
	"github.com/deppfellow/go-posts/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type emptyPosts struct{}

func (emptyPosts) ListPosts(context.Context) ([]model.Post, error) { return []model.Post{}, nil }
func (emptyPosts) GetPostByID(context.Context, string) (*model.Post, error) {
	return nil, pgx.ErrNoRows
}
func (emptyPosts) CreatePost(_ context.Context, p *model.Post) (*model.Post, error) { return p, nil }
func (emptyPosts) SavePost(_ context.Context, p *model.Post) (*model.Post, error)   { return p, nil }
func (emptyPosts) DeletePost(context.Context, string) error                         { return nil }

type noProfiles struct{}

func (noProfiles) GetProfileByUserID(context.Context, string) (*model.Profile, error) {
	return nil, pgx.ErrNoRows
}

func newTestRouter() *echo.Echo {
	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{RateLimit: 1000},
		},
		Logger: &logger,
	}

	services := &service.Services{
		Post: service.NewPostService(emptyPosts{}, noProfiles{}, nil),
	}
	return NewRouter(s, handler.NewHandlers(s, services))
}

func serve(r *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRouter_PublicPostRoutes(t *testing.T) {
	r := newTestRouter()

	rec := serve(r, http.MethodGet, "/api/posts/test")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "posts works") {
		t.Fatalf("test route: %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatalf("expected a request id header")
	}

	for _, path := range []string{"/api/posts", "/api/posts/"} {
		rec = serve(r, http.MethodGet, path)
		if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Fatalf("list %s: %d %s", path, rec.Code, rec.Body.String())
		}
	}
}

func TestRouter_PrivateRoutesNeedToken(t *testing.T) {
	r := newTestRouter()

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/posts"},
		{http.MethodDelete, "/api/posts/0b6f1a3e-2f43-4c1b-9d2a-6f1f1f1f1f1f"},
		{http.MethodPost, "/api/posts/like/0b6f1a3e-2f43-4c1b-9d2a-6f1f1f1f1f1f"},
		{http.MethodPost, "/api/posts/unlike/0b6f1a3e-2f43-4c1b-9d2a-6f1f1f1f1f1f"},
		{http.MethodPost, "/api/posts/comment/0b6f1a3e-2f43-4c1b-9d2a-6f1f1f1f1f1f"},
		{http.MethodDelete, "/api/posts/comment/0b6f1a3e-2f43-4c1b-9d2a-6f1f1f1f1f1f/c1"},
	}

	for _, route := range routes {
		rec := serve(r, route.method, route.path)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	rec := serve(newTestRouter(), http.MethodGet, "/api/nothing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body errs.HTTPError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Message != "Route not found" {
		t.Fatalf("unexpected body %s (%v)", rec.Body.String(), err)
	}
}

func TestRouter_SystemRoutes(t *testing.T) {
	r := newTestRouter()

	rec := serve(r, http.MethodGet, "/static/openapi.json")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/api/posts/like/{id}") {
		t.Fatalf("openapi.json: %d", rec.Code)
	}

	rec = serve(r, http.MethodGet, "/docs")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/static/openapi.json") {
		t.Fatalf("docs: %d", rec.Code)
	}

	// No store is configured in tests, so the database check fails.
	rec = serve(r, http.MethodGet, "/status")
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), `"database"`) {
		t.Fatalf("status: %d %s", rec.Code, rec.Body.String())
	}
}
