package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/signup", RateLimit(rps, burst), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimit_BurstThenRejected(t *testing.T) {
	router := setupRateLimitedRouter(0.001, 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/signup", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d within burst", i)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/signup", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimit_PerClientBuckets(t *testing.T) {
	router := setupRateLimitedRouter(0.001, 1)

	first := httptest.NewRecorder()
	req1, _ := http.NewRequest(http.MethodPost, "/signup", nil)
	req1.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(first, req1)
	assert.Equal(t, http.StatusOK, first.Code)

	blocked := httptest.NewRecorder()
	req2, _ := http.NewRequest(http.MethodPost, "/signup", nil)
	req2.RemoteAddr = "10.0.0.1:5678"
	router.ServeHTTP(blocked, req2)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

	other := httptest.NewRecorder()
	req3, _ := http.NewRequest(http.MethodPost, "/signup", nil)
	req3.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(other, req3)
	assert.Equal(t, http.StatusOK, other.Code)
}
