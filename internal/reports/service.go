package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/bhopalpolice/armory-backend/internal/records"
	pkgerrors "github.com/bhopalpolice/armory-backend/pkg/errors"
)

type recordSource interface {
	All() []records.Record
}

// Service derives read-only views over the record store: dashboard
// aggregations and operational alerts. Queries never mutate the store.
type Service interface {
	Summary(ctx context.Context) Summary
	TopAreas(ctx context.Context, k int) []records.CountRow
	GunTypes(ctx context.Context) []records.CountRow
	Genders(ctx context.Context) []records.CountRow
	AgeGroups(ctx context.Context) []records.CountRow
	Alerts(ctx context.Context) []Alert
}

// Summary is the dashboard headline block.
type Summary struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Submitted int `json:"submitted"`
	Expired   int `json:"expired"`
	Revoked   int `json:"revoked"`
}

// Alert is one operational advisory derived from the current table.
type Alert struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

const (
	AlertExpiredLicenses   = "expired_licenses"
	AlertAreaConcentration = "area_concentration"
	AlertExpiringSoon      = "expiring_soon"
)

// Params configures alert thresholds.
type Params struct {
	Source               recordSource
	ExpiryWarningDays    int
	ConcentrationPercent int
}

type service struct {
	source               recordSource
	expiryWarningDays    int
	concentrationPercent int
	now                  func() time.Time
}

func NewService(params Params) (Service, error) {
	if params.Source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "record source required")
	}
	if params.ExpiryWarningDays <= 0 {
		params.ExpiryWarningDays = 30
	}
	if params.ConcentrationPercent <= 0 {
		params.ConcentrationPercent = 15
	}
	return &service{
		source:               params.Source,
		expiryWarningDays:    params.ExpiryWarningDays,
		concentrationPercent: params.ConcentrationPercent,
		now:                  time.Now,
	}, nil
}

func (s *service) Summary(ctx context.Context) Summary {
	var summary Summary
	for _, rec := range s.source.All() {
		summary.Total++
		switch rec.Status {
		case records.StatusActive:
			summary.Active++
		case records.StatusSubmitted:
			summary.Submitted++
		case records.StatusExpired:
			summary.Expired++
		case records.StatusRevoked:
			summary.Revoked++
		}
	}
	return summary
}

func (s *service) TopAreas(ctx context.Context, k int) []records.CountRow {
	return records.TopK(records.CountBy(s.source.All(), records.ByArea), k)
}

func (s *service) GunTypes(ctx context.Context) []records.CountRow {
	return records.CountBy(s.source.All(), records.ByGunType)
}

func (s *service) Genders(ctx context.Context) []records.CountRow {
	return records.CountBy(s.source.All(), records.ByGender)
}

func (s *service) AgeGroups(ctx context.Context) []records.CountRow {
	return records.AgeGroups(s.source.All(), s.now())
}

func (s *service) Alerts(ctx context.Context) []Alert {
	all := s.source.All()
	alerts := []Alert{}

	expired := 0
	for _, rec := range all {
		if rec.Status == records.StatusExpired {
			expired++
		}
	}
	if expired > 0 {
		alerts = append(alerts, Alert{
			Kind:    AlertExpiredLicenses,
			Message: fmt.Sprintf("%d licenses have expired and need renewal or revocation", expired),
			Count:   expired,
		})
	}

	if len(all) > 0 {
		areas := records.TopK(records.CountBy(all, records.ByArea), 1)
		top := areas[0]
		if top.Count*100 > len(all)*s.concentrationPercent {
			alerts = append(alerts, Alert{
				Kind: AlertAreaConcentration,
				Message: fmt.Sprintf("high concentration of licenses in %s (%d licenses); consider additional monitoring during sensitive periods",
					top.Key, top.Count),
				Count: top.Count,
			})
		}
	}

	now := s.now()
	cutoff := now.AddDate(0, 0, s.expiryWarningDays)
	expiring := 0
	for _, rec := range all {
		if rec.Status == records.StatusActive && rec.ExpiryDate.After(now) && !rec.ExpiryDate.After(cutoff) {
			expiring++
		}
	}
	if expiring > 0 {
		alerts = append(alerts, Alert{
			Kind:    AlertExpiringSoon,
			Message: fmt.Sprintf("%d active licenses expire within %d days", expiring, s.expiryWarningDays),
			Count:   expiring,
		})
	}

	return alerts
}
