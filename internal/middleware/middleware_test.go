package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"appointment-planner-api/internal/auth"
	"appointment-planner-api/internal/middleware"
)

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"
	var gotUID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID = middleware.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := middleware.Auth(secret)(next)

	t.Run("valid token", func(t *testing.T) {
		tok, err := auth.IssueToken("u-1", "u@example.com", secret)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		req := httptest.NewRequest("GET", "/appointments/list", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if gotUID != "u-1" {
			t.Errorf("uid = %q", gotUID)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest("GET", "/appointments/list", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, _ := auth.IssueToken("u-1", "u@example.com", "other-secret")
		req := httptest.NewRequest("GET", "/appointments/list", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestRateLimiter(t *testing.T) {
	rl := middleware.NewRateLimiter(1, 2)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limited := rl.Middleware(next)

	codes := []int{}
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst requests rejected: %v", codes)
	}
	if codes[3] != http.StatusTooManyRequests {
		t.Errorf("expected 429 once bucket drained: %v", codes)
	}

	// a different client has its own bucket
	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("second client limited: %d", rec.Code)
	}
}
