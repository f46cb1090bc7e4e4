package middleware

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anuragkar/scambait/internal/api/response"
	"github.com/anuragkar/scambait/internal/repository/redis"
	"github.com/anuragkar/scambait/internal/security"
)

type contextKey string

const OperatorKey contextKey = "operator"

// APIKeyMiddleware guards the engagement endpoint with a shared key.
type APIKeyMiddleware struct {
	apiKey []byte
}

// NewAPIKeyMiddleware creates a new API key middleware
func NewAPIKeyMiddleware(apiKey string) *APIKeyMiddleware {
	return &APIKeyMiddleware{apiKey: []byte(apiKey)}
}

// Authenticate validates the X-API-Key header with a constant-time compare.
func (m *APIKeyMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if key == "" {
			w.Header().Set("WWW-Authenticate", "ApiKey")
			response.Unauthorized(w, "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), m.apiKey) != 1 {
			w.Header().Set("WWW-Authenticate", "ApiKey")
			response.Unauthorized(w, "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware handles operator JWT authentication for the ops API
type AuthMiddleware struct {
	jwtManager *security.JWTManager
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *security.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// Authenticate validates the bearer token
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(w, "invalid authorization header format")
			return
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), OperatorKey, claims.Operator)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOperator gets the operator name from context
func GetOperator(ctx context.Context) (string, bool) {
	operator, ok := ctx.Value(OperatorKey).(string)
	return operator, ok
}

// RateLimitMiddleware bounds engagement traffic per caller IP
type RateLimitMiddleware struct {
	rateLimiter *redis.RateLimiter
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(rateLimiter *redis.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter}
}

// Limit applies rate limiting keyed on the caller's IP. A limiter failure
// (Redis down) fails open: turn processing must keep running in degraded
// mode, so admission control is best effort.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}

		allowed, remaining, resetTime, err := m.rateLimiter.Allow(r.Context(), ip)
		if err != nil {
			log.Warn().Err(err).Str("ip", ip).Msg("Rate limiter unavailable, allowing request")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", resetTime.UTC().Format(time.RFC3339))

		if !allowed {
			response.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
