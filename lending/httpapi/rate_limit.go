package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// userLimiter keeps one token bucket per user.
type userLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newUserLimiter(requestsPerMinute int) *userLimiter {
	return &userLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    max(1, requestsPerMinute/6),
	}
}

func (l *userLimiter) allow(userID string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[userID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// rateLimitMiddleware throttles each user separately. Requests without a user are passed on,
// the gateway rejects them anyway.
func rateLimitMiddleware(limiter *userLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := actorFrom(c)
		if actor.UserID != "" && !limiter.allow(actor.UserID) {
			c.AbortWithStatusJSON(
				http.StatusTooManyRequests,
				errorBody(codeRateLimited, "Too many loan requests. Please wait a moment."),
			)

			return
		}

		c.Next()
	}
}
