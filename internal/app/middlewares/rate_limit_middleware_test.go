package middlewares

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chaimkastel/happy-hour-app-sub002/pkg/ratelimit"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLimiter struct {
	allow    bool
	lastKey  string
	lastRate ratelimit.Rate
}

func (s *stubLimiter) Allow(key string, limit ratelimit.Rate) (bool, ratelimit.RateLimitInfo) {
	s.lastKey = key
	s.lastRate = limit
	remaining := 0
	if s.allow {
		remaining = limit.Requests - 1
	}
	return s.allow, ratelimit.RateLimitInfo{
		Limit:     limit.Requests,
		Remaining: remaining,
		Reset:     time.Now().Add(limit.Window),
	}
}

func (s *stubLimiter) Reset(key string) error { return nil }

func newLimitedApp(limiter ratelimit.RateLimiter, limit ratelimit.Rate, userID string) *fiber.App {
	m := NewRateLimitMiddleware(limiter)
	app := fiber.New()
	if userID != "" {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user_id", userID)
			return c.Next()
		})
	}
	app.Get("/", m.LimitByUser(limit), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestLimitByUserAppliesConfiguredRate(t *testing.T) {
	tests := []struct {
		name string
		rate ratelimit.Rate
	}{
		{"authenticated consumer rate", ratelimit.AuthenticatedAPILimit},
		{"merchant rate", ratelimit.MerchantAPILimit},
		{"claim rate", ratelimit.ClaimLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := &stubLimiter{allow: true}
			app := newLimitedApp(limiter, tt.rate, "account-1")

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.rate, limiter.lastRate)
			assert.Equal(t, "user:account-1", limiter.lastKey)
		})
	}
}

func TestLimitByUserFallsBackToIPWhenUnauthenticated(t *testing.T) {
	limiter := &stubLimiter{allow: true}
	app := newLimitedApp(limiter, ratelimit.AuthenticatedAPILimit, "")

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, limiter.lastKey, "ip:")
}

func TestLimitByUserRejectsWhenExhausted(t *testing.T) {
	limiter := &stubLimiter{allow: false}
	app := newLimitedApp(limiter, ratelimit.AuthenticatedAPILimit, "account-1")

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
}
