package controllers

import (
	"context"
	"net/http"

	"github.com/lumafood/storefront-api/pkg/logger"

	"github.com/lumafood/storefront-api/api/responses"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// HealthReady reports readiness. The snapshot cache is optional, so a failed
// ping degrades the report but still returns 200; the API serves without it.
func HealthReady(cache pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		status := map[string]string{"status": "ok"}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				status["cache"] = "unavailable"
				if logg != nil {
					logg.Warn(ctx, "snapshot cache ping failed")
				}
			} else {
				status["cache"] = "ok"
			}
		}

		responses.WriteSuccess(w, status)
	}
}
