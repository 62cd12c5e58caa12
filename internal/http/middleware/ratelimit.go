package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/solpin/solpin-service/internal/ratelimit"
	"github.com/solpin/solpin-service/internal/utils/response"
)

type RateLimitConfig struct {
	redisClient *redis.Client
	limiters    map[string]*ratelimit.TokenBucket
}

func NewRateLimitConfig(redisClient *redis.Client, uploadsPerMin int64) *RateLimitConfig {
	config := &RateLimitConfig{
		redisClient: redisClient,
		limiters:    make(map[string]*ratelimit.TokenBucket),
	}

	// POST /api/uploads/upload: per client IP
	config.limiters["upload"] = ratelimit.NewTokenBucket(redisClient, uploadsPerMin, uploadsPerMin)

	return config
}

func (rlc *RateLimitConfig) RateLimitMiddleware(action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get the appropriate rate limiter
			limiter, exists := rlc.limiters[action]
			if !exists {
				// If no rate limiter configured for this action, allow the request
				next.ServeHTTP(w, r)
				return
			}

			clientIP := ClientIP(r)

			allowed, err := limiter.Allow(r.Context(), clientIP, action)
			if err != nil {
				response.WriteJSON(w, http.StatusInternalServerError, response.Error(
					fmt.Errorf("rate limit check failed: %w", err)))
				return
			}

			if !allowed {
				response.WriteJSON(w, http.StatusTooManyRequests, response.Error(
					errors.New("rate limit exceeded, try again later")))
				return
			}

			if remaining, err := limiter.GetRemaining(r.Context(), clientIP, action); err == nil {
				w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the client address: first hop of X-Forwarded-For when a
// proxy set it, otherwise the connection's remote host.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
