package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bhopalpolice/armory-backend/api/responses"
	"github.com/bhopalpolice/armory-backend/api/validators"
	"github.com/bhopalpolice/armory-backend/internal/notifications"
	"github.com/bhopalpolice/armory-backend/internal/records"
	"github.com/bhopalpolice/armory-backend/pkg/config"
	pkgerrors "github.com/bhopalpolice/armory-backend/pkg/errors"
	"github.com/bhopalpolice/armory-backend/pkg/logger"
)

type dispatchRequest struct {
	LicenseNo       string `json:"license_no" validate:"required"`
	Kind            string `json:"kind" validate:"required,oneof=collection_notice reminder return_notice"`
	CollectionPoint string `json:"collection_point" validate:"required"`
	Deadline        string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	ReturnDate      string `json:"return_date" validate:"omitempty,datetime=2006-01-02"`
}

type bulkDispatchRequest struct {
	Areas           []string `json:"areas" validate:"required,min=1,dive,required"`
	Kind            string   `json:"kind" validate:"required,oneof=collection_notice reminder return_notice"`
	CollectionPoint string   `json:"collection_point" validate:"required"`
	Deadline        string   `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	ReturnDate      string   `json:"return_date" validate:"omitempty,datetime=2006-01-02"`
}

// DispatchNotification sends one simulated notice to a license holder.
// Notification and status transition are independent operations; this
// never changes a record's status.
func DispatchNotification(store recordStore, svc notifications.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dispatchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rec, ok := store.Find(req.LicenseNo)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "license not found"))
			return
		}

		kind, _ := notifications.ParseKind(req.Kind)
		params := templateParams(cfg, req.CollectionPoint, req.Deadline, req.ReturnDate)

		event, err := svc.Dispatch(r.Context(),
			notifications.Recipient{Name: rec.Name, Mobile: rec.Mobile}, kind, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, event)
	}
}

// BulkNotifications sends one notice per Active holder in the selected
// areas, preserving the table's insertion order.
func BulkNotifications(store recordStore, svc notifications.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkDispatchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		areaSet := make(map[string]bool, len(req.Areas))
		for _, area := range req.Areas {
			areaSet[area] = true
		}

		var recipients []notifications.Recipient
		for _, rec := range store.All() {
			if rec.Status == records.StatusActive && areaSet[rec.Area] {
				recipients = append(recipients, notifications.Recipient{Name: rec.Name, Mobile: rec.Mobile})
			}
		}

		kind, _ := notifications.ParseKind(req.Kind)
		params := templateParams(cfg, req.CollectionPoint, req.Deadline, req.ReturnDate)

		events, err := svc.DispatchBulk(r.Context(), recipients, kind, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"sent":  len(events),
				"areas": req.Areas,
				"kind":  req.Kind,
			})
			logg.Info(ctx, "notifications.bulk_sent")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"sent": len(events)})
	}
}

// ListNotifications returns the most recent dispatch events, newest first.
func ListNotifications(svc notifications.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := cfg.Notify.RecentLimit
		if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil || value <= 0 {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer"))
				return
			}
			limit = value
		}
		responses.WriteSuccess(w, map[string]any{
			"items": svc.Recent(r.Context(), limit),
			"total": svc.Total(r.Context()),
		})
	}
}

// templateParams fills dates from config offsets when the request omits
// them, mirroring the dashboard's default deadline pickers.
func templateParams(cfg *config.Config, collectionPoint, deadline, returnDate string) notifications.TemplateParams {
	now := time.Now()
	params := notifications.TemplateParams{
		CollectionPoint: collectionPoint,
		Deadline:        now.AddDate(0, 0, cfg.Notify.DeadlineDays),
		ReturnDate:      now.AddDate(0, 0, cfg.Notify.ReturnDays),
		Contact:         cfg.Notify.Contact,
	}
	if deadline != "" {
		if parsed, err := time.Parse(records.DateLayout, deadline); err == nil {
			params.Deadline = parsed
		}
	}
	if returnDate != "" {
		if parsed, err := time.Parse(records.DateLayout, returnDate); err == nil {
			params.ReturnDate = parsed
		}
	}
	return params
}
