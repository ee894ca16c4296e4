package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bhopalpolice/armory-backend/api/responses"
	"github.com/bhopalpolice/armory-backend/internal/reports"
	pkgerrors "github.com/bhopalpolice/armory-backend/pkg/errors"
	"github.com/bhopalpolice/armory-backend/pkg/logger"
)

const defaultTopAreas = 15

// AnalyticsSummary returns the dashboard headline counts.
func AnalyticsSummary(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Summary(r.Context()))
	}
}

// AnalyticsTopAreas returns the top-K areas by license count.
func AnalyticsTopAreas(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k := defaultTopAreas
		if raw := strings.TrimSpace(r.URL.Query().Get("top")); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil || value <= 0 {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "top must be a positive integer"))
				return
			}
			k = value
		}
		responses.WriteSuccess(w, map[string]any{"items": svc.TopAreas(r.Context(), k)})
	}
}

func AnalyticsGunTypes(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"items": svc.GunTypes(r.Context())})
	}
}

func AnalyticsGenders(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"items": svc.Genders(r.Context())})
	}
}

// AnalyticsAgeGroups returns the age histogram. Holders under 21 are
// excluded from every bucket by policy.
func AnalyticsAgeGroups(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"items": svc.AgeGroups(r.Context())})
	}
}

// ReportAlerts returns operational advisories for the current table.
func ReportAlerts(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"items": svc.Alerts(r.Context())})
	}
}
