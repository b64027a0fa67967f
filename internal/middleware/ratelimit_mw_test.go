package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("auth|1.2.3.4"), "attempt %d should be allowed", i+1)
	}
	assert.False(t, rl.Allow("auth|1.2.3.4"), "6th attempt should be rejected")
	// Rejection does not reset the window
	assert.False(t, rl.Allow("auth|1.2.3.4"))
}

func TestRateLimiter_IndependentKeys(t *testing.T) {
	rl := NewRateLimiter(5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		rl.Allow("auth|1.2.3.4")
	}
	assert.False(t, rl.Allow("auth|1.2.3.4"))
	assert.True(t, rl.Allow("auth|5.6.7.8"), "other client key has its own budget")
	assert.True(t, rl.Allow("other|1.2.3.4"), "other endpoint class has its own budget")
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(5, 15*time.Minute)
	current := time.Now()
	rl.now = func() time.Time { return current }

	for i := 0; i < 6; i++ {
		rl.Allow("auth|1.2.3.4")
	}
	assert.False(t, rl.Allow("auth|1.2.3.4"))

	// The bucket resets wholesale once the window elapses
	current = current.Add(15*time.Minute + time.Second)
	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("auth|1.2.3.4"))
	}
	assert.False(t, rl.Allow("auth|1.2.3.4"))
}

func TestRateLimiter_ConcurrentIncrements(t *testing.T) {
	rl := NewRateLimiter(50, time.Minute)

	var wg sync.WaitGroup
	allowed := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- rl.Allow("auth|1.2.3.4")
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	// No lost updates: exactly the budget gets through
	assert.Equal(t, 50, count)
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(5, 15*time.Minute)
	router := gin.New()
	router.POST("/login", rl.Middleware("auth", zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	doRequest := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		router.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest().Code)
	}

	w := doRequest()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many attempts")
}
