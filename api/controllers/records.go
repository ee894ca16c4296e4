package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bhopalpolice/armory-backend/api/responses"
	"github.com/bhopalpolice/armory-backend/internal/records"
	"github.com/bhopalpolice/armory-backend/pkg/config"
	pkgerrors "github.com/bhopalpolice/armory-backend/pkg/errors"
	"github.com/bhopalpolice/armory-backend/pkg/logger"
	"github.com/bhopalpolice/armory-backend/pkg/metrics"
)

type recordStore interface {
	All() []records.Record
	List(records.Filter) []records.Record
	Find(licenseNo string) (records.Record, bool)
	UpdateStatus(licenseNo string, action records.Action) (records.Record, error)
	LoadFile(path string) error
	LoadReader(r io.Reader) error
	DuplicateKeys() []string
	Len() int
}

func filterFromQuery(r *http.Request) records.Filter {
	q := r.URL.Query()
	return records.Filter{
		Area:          strings.TrimSpace(q.Get("area")),
		Status:        strings.TrimSpace(q.Get("status")),
		GunType:       strings.TrimSpace(q.Get("gun_type")),
		NameSubstring: strings.TrimSpace(q.Get("name")),
	}
}

// ListRecords returns the filtered view of the license table.
func ListRecords(store recordStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := store.List(filterFromQuery(r))
		responses.WriteSuccess(w, map[string]any{
			"items": items,
			"total": len(items),
		})
	}
}

// GetRecord returns a single record by license number.
func GetRecord(store recordStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		licenseNo := chi.URLParam(r, "licenseNo")
		rec, ok := store.Find(licenseNo)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "license not found"))
			return
		}
		responses.WriteSuccess(w, rec)
	}
}

// SubmitWeapon marks an Active license's weapon as handed in.
func SubmitWeapon(store recordStore, logg *logger.Logger) http.HandlerFunc {
	return updateStatusHandler(store, logg, records.ActionSubmit)
}

// ReturnWeapon marks a Submitted license's weapon as returned.
func ReturnWeapon(store recordStore, logg *logger.Logger) http.HandlerFunc {
	return updateStatusHandler(store, logg, records.ActionReturn)
}

func updateStatusHandler(store recordStore, logg *logger.Logger, action records.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		licenseNo := chi.URLParam(r, "licenseNo")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithLicenseNo(ctx, licenseNo)
		}

		rec, err := store.UpdateStatus(licenseNo, action)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(logg.WithField(ctx, "status", rec.Status), "record.status_updated")
		}
		responses.WriteSuccess(w, rec)
	}
}

// ExportRecords streams the filtered view as a CSV download in the
// input schema, so an unfiltered export reloads into the same store.
func ExportRecords(store recordStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := store.List(filterFromQuery(r))

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="filtered_weapons.csv"`)
		if err := records.WriteRecords(w, items); err != nil && logg != nil {
			// headers already sent; log only
			logg.Error(r.Context(), "export.write_failed", err)
		}
	}
}

// ReloadRecords re-reads the configured default dataset.
func ReloadRecords(store recordStore, cfg *config.Config, apiMetrics *metrics.APIMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.LoadFile(cfg.Data.LicenseFile); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		finishLoad(r, store, apiMetrics, logg)
		responses.WriteSuccess(w, map[string]any{"loaded": store.Len()})
	}
}

// UploadRecords replaces the table from an uploaded CSV file.
func UploadRecords(store recordStore, cfg *config.Config, apiMetrics *metrics.APIMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxBytes := int64(cfg.Data.MaxUploadMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		file, _, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "multipart field 'file' required"))
			return
		}
		defer file.Close()

		if err := store.LoadReader(file); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		finishLoad(r, store, apiMetrics, logg)
		responses.WriteSuccess(w, map[string]any{"loaded": store.Len()})
	}
}

func finishLoad(r *http.Request, store recordStore, apiMetrics *metrics.APIMetrics, logg *logger.Logger) {
	apiMetrics.SetRecordsLoaded(store.Len())
	if logg == nil {
		return
	}
	ctx := logg.WithField(r.Context(), "records", store.Len())
	if dups := store.DuplicateKeys(); len(dups) > 0 {
		logg.Warn(logg.WithField(ctx, "duplicate_license_nos", dups), "records.loaded_with_duplicates")
		return
	}
	logg.Info(ctx, "records.loaded")
}
