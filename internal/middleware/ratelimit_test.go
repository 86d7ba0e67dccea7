package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func limitedRouter(rps float64, burst int) *gin.Engine {
	router := gin.New()
	rl := NewRateLimiter(rps, burst)
	router.Use(rl.Middleware())
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return router
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	router := limitedRouter(1, 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
}

func TestRateLimiter_BlocksOverBurst(t *testing.T) {
	router := limitedRouter(0.001, 2)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		router.ServeHTTP(w, req)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst exhausted, got %d", w.Code)
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)

	if !rl.getLimiter("10.0.0.1").Allow() {
		t.Error("first request from first IP should pass")
	}
	if rl.getLimiter("10.0.0.1").Allow() {
		t.Error("second request from first IP should be blocked")
	}
	if !rl.getLimiter("10.0.0.2").Allow() {
		t.Error("a different IP should have its own limiter")
	}
}
