package controllers

import (
	"net/http"

	"github.com/bhopalpolice/armory-backend/api/responses"
	"github.com/bhopalpolice/armory-backend/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Armory-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness plus whether a dataset is loaded; an
// empty store is still ready, reads just render empty.
func HealthReady(cfg *config.Config, store recordStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Armory-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]any{
			"status":  "ready",
			"records": store.Len(),
		})
	}
}
