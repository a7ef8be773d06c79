package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/Devaraju89/OneKart-sub000/api/responses"
	"github.com/Devaraju89/OneKart-sub000/pkg/config"
	"github.com/Devaraju89/OneKart-sub000/pkg/db"
	pkgerrors "github.com/Devaraju89/OneKart-sub000/pkg/errors"
	"github.com/Devaraju89/OneKart-sub000/pkg/logger"
	"github.com/Devaraju89/OneKart-sub000/pkg/redis"
)

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OneKart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes every dependency and combines the failures, so one
// down dependency does not mask another.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OneKart-Env", cfg.App.Env)
		ctx := r.Context()

		var errs error
		statuses := map[string]string{"database": "up", "redis": "up"}
		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				statuses["database"] = "down"
				errs = multierr.Append(errs, err)
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				statuses["redis"] = "down"
				errs = multierr.Append(errs, err)
			}
		}

		if errs != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "dependency not ready").WithDetails(statuses))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "dependencies": statuses})
	}
}
