package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyFunc extracts the rate-limit key for a request (user id, client IP).
// An empty key skips limiting for that request.
type KeyFunc func(r *http.Request) string

// RateLimiter is a fixed-window counter backed by Redis. It fails open:
// if Redis is unreachable the request is allowed through.
type RateLimiter struct {
	redis   *redis.Client
	limit   int64
	window  time.Duration
	prefix  string
	keyFunc KeyFunc
}

func NewRateLimiter(redisClient *redis.Client, limit int64, window time.Duration, prefix string, keyFunc KeyFunc) *RateLimiter {
	return &RateLimiter{
		redis:   redisClient,
		limit:   limit,
		window:  window,
		prefix:  prefix,
		keyFunc: keyFunc,
	}
}

// ClientIP extracts the requester's IP, preferring X-Forwarded-For when a
// reverse proxy set it.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx > 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.keyFunc(r)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		redisKey := rl.prefix + key

		pipe := rl.redis.Pipeline()
		incrCmd := pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, rl.window)
		if _, err := pipe.Exec(ctx); err != nil {
			next.ServeHTTP(w, r)
			return
		}

		count := incrCmd.Val()
		remaining := rl.limit - count
		if remaining < 0 {
			remaining = 0
		}

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if count > rl.limit {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int64(rl.window.Seconds())))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Rate limit exceeded. Please try again later."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
