package middleware

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mwalczyk/taskboard/internal/apperr"
)

// Limiter is a fixed-window per-key counter backed by Redis INCR/EXPIRE.
type Limiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

func NewLimiter(rdb *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, limit: int64(limit), window: window}
}

// Allow reports whether another request under key fits the current window.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := "ratelimit:" + key
	n, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := l.rdb.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, err
		}
	}
	return n <= l.limit, nil
}

// AuthRateLimit throttles the wrapped routes per client IP. A nil limiter
// disables throttling, and Redis errors fail open: a login limiter must not
// take logins down with it.
func AuthRateLimit(l *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l == nil {
				next.ServeHTTP(w, r)
				return
			}

			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			ok, err := l.Allow(r.Context(), host+":"+r.URL.Path)
			if err != nil {
				log.Printf("rate limiter unavailable: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				apperr.Write(w, &apperr.Error{
					StatusCode: http.StatusTooManyRequests,
					Message:    "Too many requests, try again later",
				}, false)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
