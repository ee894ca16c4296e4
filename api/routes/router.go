package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bhopalpolice/armory-backend/api/controllers"
	"github.com/bhopalpolice/armory-backend/api/middleware"
	"github.com/bhopalpolice/armory-backend/internal/notifications"
	"github.com/bhopalpolice/armory-backend/internal/records"
	"github.com/bhopalpolice/armory-backend/internal/reports"
	"github.com/bhopalpolice/armory-backend/pkg/config"
	"github.com/bhopalpolice/armory-backend/pkg/logger"
	"github.com/bhopalpolice/armory-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store *records.Store,
	reportsService reports.Service,
	notificationsService notifications.Service,
	apiMetrics *metrics.APIMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(apiMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, store))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/records", func(r chi.Router) {
			r.Get("/", controllers.ListRecords(store, logg))
			r.Get("/export", controllers.ExportRecords(store, logg))
			r.Post("/reload", controllers.ReloadRecords(store, cfg, apiMetrics, logg))
			r.Post("/upload", controllers.UploadRecords(store, cfg, apiMetrics, logg))
			r.Route("/{licenseNo}", func(r chi.Router) {
				r.Get("/", controllers.GetRecord(store, logg))
				r.Post("/submit", controllers.SubmitWeapon(store, logg))
				r.Post("/return", controllers.ReturnWeapon(store, logg))
			})
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/summary", controllers.AnalyticsSummary(reportsService, logg))
			r.Get("/areas", controllers.AnalyticsTopAreas(reportsService, logg))
			r.Get("/gun-types", controllers.AnalyticsGunTypes(reportsService, logg))
			r.Get("/genders", controllers.AnalyticsGenders(reportsService, logg))
			r.Get("/age-groups", controllers.AnalyticsAgeGroups(reportsService, logg))
		})

		r.Get("/reports/alerts", controllers.ReportAlerts(reportsService, logg))

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, cfg, logg))
			r.Post("/dispatch", controllers.DispatchNotification(store, notificationsService, cfg, logg))
			r.Post("/bulk", controllers.BulkNotifications(store, notificationsService, cfg, logg))
		})
	})

	return r
}
