package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tomo4k1/tamenchan-bootcamp/common/utils"
)

func newTestServer() *HttpServer {
	s := NewHttpServer(WithMode(gin.TestMode))
	s.Use(RequestIDMiddleware(), SecurityMiddleware())
	s.GET("/ok", func(c *Context) error {
		c.Success(map[string]string{"hello": "world"})
		return nil
	})
	s.GET("/missing", func(c *Context) error {
		return ErrNotFound("problem not found", nil)
	})
	s.GET("/boom", func(c *Context) error {
		return errors.New("boom")
	})
	limited := s.Group("/limited")
	limited.GET("/x", func(c *Context) error {
		c.Success(nil)
		return nil
	}, RateLimitMiddleware(utils.NewKeyedRateLimiter(1, 1)))
	return s
}

func do(t *testing.T, s *HttpServer, method, path string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	var resp Response
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode %s: %v (%s)", path, err, rec.Body.String())
		}
	}
	return rec, resp
}

func TestHttpServer_Success(t *testing.T) {
	rec, resp := do(t, newTestServer(), http.MethodGet, "/ok")
	if rec.Code != http.StatusOK || resp.Code != CodeSuccess {
		t.Fatalf("expected 200/0, got %d/%d", rec.Code, resp.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatalf("expected security headers")
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer()
	first, _ := do(t, s, http.MethodGet, "/ok")
	second, _ := do(t, s, http.MethodGet, "/ok")

	id := first.Header().Get("X-Request-ID")
	prefix, suffix, ok := strings.Cut(id, "-")
	if !ok || len(prefix) != len("20060102150405") {
		t.Fatalf("expected time prefixed request id, got %q", id)
	}
	if _, err := uuid.Parse(suffix); err != nil {
		t.Fatalf("expected uuid suffix, got %q: %v", suffix, err)
	}
	if id == second.Header().Get("X-Request-ID") {
		t.Fatalf("expected distinct request ids, got %q twice", id)
	}

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "client-id")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "client-id" {
		t.Fatalf("expected client request id kept, got %q", got)
	}
}

func TestHttpServer_ErrorMapping(t *testing.T) {
	s := newTestServer()
	rec, resp := do(t, s, http.MethodGet, "/missing")
	if rec.Code != http.StatusNotFound || resp.Code != CodeNotFound {
		t.Fatalf("expected 404/%d, got %d/%d", CodeNotFound, rec.Code, resp.Code)
	}

	rec, resp = do(t, s, http.MethodGet, "/boom")
	if rec.Code != http.StatusInternalServerError || resp.Code != CodeServerError || resp.Message != "boom" {
		t.Fatalf("expected 500 boom, got %d %+v", rec.Code, resp)
	}
}

func TestHttpServer_RateLimit(t *testing.T) {
	s := newTestServer()
	rec, _ := do(t, s, http.MethodGet, "/limited/x")
	if rec.Code != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", rec.Code)
	}
	rec, resp := do(t, s, http.MethodGet, "/limited/x")
	if rec.Code != http.StatusTooManyRequests || resp.Code != CodeTooManyRequests {
		t.Fatalf("second request expected 429, got %d %+v", rec.Code, resp)
	}
}
