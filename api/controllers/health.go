package controllers

import (
	"net/http"

	"github.com/angelmondragon/mahalaxmi-storefront/api/responses"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/mahalaxmi-storefront/pkg/errors"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/logger"
	"github.com/angelmondragon/mahalaxmi-storefront/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once Redis answers. The commerce backend is not probed.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
