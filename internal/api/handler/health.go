package handler

import (
	"net/http"
	"time"

	"github.com/anuragkar/scambait/internal/api/response"
	"github.com/anuragkar/scambait/internal/domain"
	"github.com/anuragkar/scambait/internal/repository/failover"
)

// ServiceName and ServiceVersion identify the deployment in the banner.
const (
	ServiceName    = "scambait"
	ServiceVersion = "1.0.0"
)

// Root returns the service banner
func Root(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"name":    ServiceName,
		"version": ServiceVersion,
		"status":  "operational",
		"endpoints": map[string]string{
			"chat":   "/chat (POST)",
			"health": "/health (GET)",
		},
	})
}

// HealthCheck reports which session backend is currently serving state. The
// probe actively pings the store so a recovered Redis flips the status back
// without waiting for traffic.
func HealthCheck(store *failover.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = store.Ping(r.Context())

		status := "healthy"
		if store.Status() == domain.StoreFallback {
			status = "degraded"
		}

		response.OK(w, map[string]any{
			"status":    status,
			"store":     store.Status(),
			"timestamp": time.Now().UnixMilli(),
		})
	}
}
