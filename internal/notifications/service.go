package notifications

import (
	"context"
	"time"

	pkgerrors "github.com/bhopalpolice/armory-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service exposes simulated notification dispatch and the session log.
type Service interface {
	Dispatch(ctx context.Context, recipient Recipient, kind Kind, params TemplateParams) (Event, error)
	DispatchBulk(ctx context.Context, recipients []Recipient, kind Kind, params TemplateParams) ([]Event, error)
	Recent(ctx context.Context, limit int) []Event
	Total(ctx context.Context) int
}

type dispatchMetrics interface {
	IncDispatched(kind string)
}

type service struct {
	log     *Log
	metrics dispatchMetrics
	now     func() time.Time
}

// NewService wires the dispatch simulation. metrics may be nil.
func NewService(log *Log, metrics dispatchMetrics) (Service, error) {
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notification log required")
	}
	return &service{
		log:     log,
		metrics: metrics,
		now:     time.Now,
	}, nil
}

// Dispatch renders the message and appends a Sent event. There is no
// transport layer, so a dispatch with a valid kind and params never
// fails; recipient identity is copied by value even when fields are
// blank in the dataset.
func (s *service) Dispatch(ctx context.Context, recipient Recipient, kind Kind, params TemplateParams) (Event, error) {
	message, err := renderMessage(kind, recipient.Name, params)
	if err != nil {
		return Event{}, err
	}

	event := Event{
		ID:        uuid.New(),
		Kind:      kind,
		Mobile:    recipient.Mobile,
		Name:      recipient.Name,
		Message:   message,
		Timestamp: s.now(),
		Status:    StatusSent,
	}
	s.log.Append(event)
	if s.metrics != nil {
		s.metrics.IncDispatched(string(kind))
	}
	return event, nil
}

// DispatchBulk produces one event per recipient, preserving input order.
// The whole input is processed sequentially; there is no early exit.
func (s *service) DispatchBulk(ctx context.Context, recipients []Recipient, kind Kind, params TemplateParams) ([]Event, error) {
	// validate once up front so a bad kind cannot half-fill the log
	if _, err := renderMessage(kind, "", params); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(recipients))
	for _, recipient := range recipients {
		event, err := s.Dispatch(ctx, recipient, kind, params)
		if err != nil {
			return events, err
		}
		events = append(events, event)
	}
	return events, nil
}

func (s *service) Recent(ctx context.Context, limit int) []Event {
	return s.log.Recent(limit)
}

func (s *service) Total(ctx context.Context) int {
	return s.log.Len()
}
