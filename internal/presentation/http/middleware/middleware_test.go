package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockdesk/internal/config"
	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/internal/infrastructure/backend"
	"github.com/sangkips/stockdesk/internal/infrastructure/repository"
	"github.com/sangkips/stockdesk/internal/presentation/http/dto/response"
	"github.com/sangkips/stockdesk/internal/presentation/http/handler"
	"github.com/sangkips/stockdesk/pkg/apperror"
	"github.com/sangkips/stockdesk/pkg/notify"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticSessions map[string]string

func (s staticSessions) Resolve(_ context.Context, token string) (*entity.Session, error) {
	business, ok := s[token]
	if !ok {
		return nil, apperror.ErrNoSession
	}
	return &entity.Session{Token: token, BusinessID: business}, nil
}

func TestSessionMiddleware(t *testing.T) {
	sessions := staticSessions{"tok": "biz-7"}

	tests := []struct {
		name     string
		header   string
		value    string
		wantCode int
	}{
		{name: "token header", header: backend.TokenHeader, value: "tok", wantCode: http.StatusOK},
		{name: "bearer fallback", header: "Authorization", value: "Bearer tok", wantCode: http.StatusOK},
		{name: "missing", wantCode: http.StatusUnauthorized},
		{name: "unknown token", header: backend.TokenHeader, value: "other", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(SessionMiddleware(sessions))
			r.GET("/", func(c *gin.Context) {
				creds, ok := backend.CredentialsFrom(c.Request.Context())
				if !ok || creds.Token != "tok" || creds.BusinessID != "biz-7" {
					t.Errorf("unexpected credentials %+v", creds)
				}
				if handler.GetBusinessID(c) != "biz-7" {
					t.Errorf("business id not set")
				}
				if _, ok := notify.From(c.Request.Context()).(*notify.Collector); !ok {
					t.Errorf("expected a notification collector")
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}

func TestBusinessRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewBusinessRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(handler.BusinessIDKey, c.GetHeader("X-Business"))
		c.Next()
	})
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(business string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Business", business)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := call("a"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
	}
	if code := call("a"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", code)
	}
	if code := call("b"); code != http.StatusOK {
		t.Fatalf("other business should have its own bucket, got %d", code)
	}
	if n := rl.Stats()["active_keys"].(int); n != 2 {
		t.Fatalf("expected 2 keys, got %d", n)
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewBusinessRateLimiter(context.Background(), RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1, EntryTTL: time.Minute})
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("old")
	now = now.Add(2 * time.Minute)
	rl.getLimiter("fresh")
	rl.cleanup()

	if _, ok := rl.limiters["old"]; ok {
		t.Fatalf("stale entry survived cleanup")
	}
	if _, ok := rl.limiters["fresh"]; !ok {
		t.Fatalf("fresh entry was removed")
	}
}

func TestRateLimiterConfigFrom(t *testing.T) {
	rc := RateLimiterConfigFrom(config.RateLimitConfig{Requests: 120, Duration: 60})
	if rc.RequestsPerSecond != 2 || rc.BurstSize != 120 {
		t.Fatalf("unexpected config %+v", rc)
	}
	if rc := RateLimiterConfigFrom(config.RateLimitConfig{}); rc.BurstSize != DefaultRateLimiterConfig().BurstSize {
		t.Fatalf("expected defaults for an empty config, got %+v", rc)
	}
}

func TestLoggerMiddlewareRequestID(t *testing.T) {
	r := gin.New()
	r.Use(LoggerMiddleware(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(response.RequestIDKey))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "2f1c6f5e-4a8b-4d61-9d0e-7b0d0c3e9a11")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "2f1c6f5e-4a8b-4d61-9d0e-7b0d0c3e9a11" {
		t.Fatalf("expected client request id to be kept, got %q", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got == "" || got == "not-a-uuid" || got != w.Body.String() {
		t.Fatalf("expected a generated request id, got %q", got)
	}
}

func TestCORSAllowsSessionHeaders(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(&config.CORSConfig{AllowedHeaders: []string{"Content-Type"}}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "token,business,idempotency-key")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected preflight 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Fatalf("origin not allowed: %v", w.Header())
	}
}

func TestIdempotencyScopedToBusiness(t *testing.T) {
	repo := repository.NewMemoryIdempotencyRepository()
	calls := 0

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(handler.BusinessIDKey, c.GetHeader("X-Business"))
		c.Next()
	})
	r.POST("/", Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"n": calls})
	})

	post := func(business, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Business", business)
		req.Header.Set(IdempotencyKeyHeader, key)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := post("a", "k")
	replay := post("a", "k")
	if calls != 1 || replay.Body.String() != first.Body.String() {
		t.Fatalf("expected replay of the first response, calls=%d body=%s", calls, replay.Body.String())
	}
	post("b", "k")
	if calls != 2 {
		t.Fatalf("same key in another business must not replay, calls=%d", calls)
	}
	post("a", "")
	if calls != 3 {
		t.Fatalf("request without key must run, calls=%d", calls)
	}
}
