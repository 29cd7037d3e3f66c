package middlewares

import (
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// GlobalRateLimit caps requests per client IP across the whole API.
func (m *Middlewares) GlobalRateLimit() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Duration(m.InternalConfig.App.MaxTimeRequestsPerSeconds)*time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
		}),
	)
}

// BookingRateLimit is the stricter per-IP limiter placed in front of appointment creation.
func (m *Middlewares) BookingRateLimit() func(next http.Handler) http.Handler {
	limiter := NewRateLimiter(
		m.Log,
		m.InternalConfig.App.BookingRateLimitPerSecond,
		m.InternalConfig.App.BookingRateLimitBurst,
		time.Duration(m.InternalConfig.App.MaxTimeRequestsPerSeconds)*time.Second,
	)
	return limiter.Limit
}
