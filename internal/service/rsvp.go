package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Shivanand-hulikatti/campus-events/internal/metrics"
	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"github.com/Shivanand-hulikatti/campus-events/internal/repository"
)

const (
	opIncrement = "increment"
	opDecrement = "decrement"

	defaultStoreTimeout = 3 * time.Second
)

// CounterStore applies attendee count changes as single atomic conditional
// updates. Implementations must never read, test and write in separate steps.
type CounterStore interface {
	IncrementAttendees(ctx context.Context, id string) (int, error)
	DecrementAttendees(ctx context.Context, id string) (int, error)
}

// RSVPService maintains the per-event attendee count. The count has a floor
// of 0 and no upper bound.
type RSVPService struct {
	store   CounterStore
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// RSVPOption configures an RSVPService.
type RSVPOption func(*RSVPService)

// WithStoreTimeout bounds every store call. Non-positive values are ignored.
func WithStoreTimeout(d time.Duration) RSVPOption {
	return func(s *RSVPService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) RSVPOption {
	return func(s *RSVPService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records every outcome on m.
func WithMetrics(m *metrics.Metrics) RSVPOption {
	return func(s *RSVPService) { s.metrics = m }
}

// NewRSVPService constructs an RSVPService around store.
func NewRSVPService(store CounterStore, opts ...RSVPOption) *RSVPService {
	s := &RSVPService{
		store:   store,
		timeout: defaultStoreTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RSVP adds one attendee to the event and returns the new count.
//
// Errors: ErrInvalidEventID, repository.ErrNotFound,
// repository.ErrStoreUnavailable.
func (s *RSVPService) RSVP(ctx context.Context, eventID string) (*model.RSVPResponse, error) {
	count, id, err := s.apply(ctx, opIncrement, eventID, s.store.IncrementAttendees)
	if err != nil {
		return nil, err
	}
	return &model.RSVPResponse{EventID: id, AttendeeCount: count, Message: "RSVP successful"}, nil
}

// CancelRSVP removes one attendee from the event and returns the new count.
//
// Errors: ErrInvalidEventID, repository.ErrNotFound,
// repository.ErrNothingToCancel when the count is already 0,
// repository.ErrStoreUnavailable.
func (s *RSVPService) CancelRSVP(ctx context.Context, eventID string) (*model.RSVPResponse, error) {
	count, id, err := s.apply(ctx, opDecrement, eventID, s.store.DecrementAttendees)
	if err != nil {
		return nil, err
	}
	return &model.RSVPResponse{EventID: id, AttendeeCount: count, Message: "RSVP cancelled"}, nil
}

func (s *RSVPService) apply(
	ctx context.Context,
	op string,
	eventID string,
	update func(context.Context, string) (int, error),
) (int, string, error) {
	id, err := normalizeEventID(eventID)
	if err != nil {
		s.metrics.ObserveRSVP(op, metrics.OutcomeInvalidID)
		return 0, "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	count, err := update(ctx, id)
	if err != nil {
		err = classify(op, err)
		s.report(ctx, op, id, 0, err)
		return 0, id, err
	}
	if count < 0 {
		// The store broke the floor.
		err = fmt.Errorf("%w: %s returned negative count %d", repository.ErrStoreUnavailable, op, count)
		s.report(ctx, op, id, count, err)
		return 0, id, err
	}
	s.report(ctx, op, id, count, nil)
	return count, id, nil
}

// classify keeps the three store outcomes distinct and tags anything else,
// timeouts included, as a retryable store failure.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, repository.ErrNothingToCancel),
		errors.Is(err, repository.ErrStoreUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %s: %w", repository.ErrStoreUnavailable, op, err)
	}
}

func (s *RSVPService) report(ctx context.Context, op, id string, count int, err error) {
	attrs := []any{"operation", op, "event_id", id}
	switch {
	case err == nil:
		s.metrics.ObserveRSVP(op, metrics.OutcomeSuccess)
		s.logger.InfoContext(ctx, "rsvp counter updated", append(attrs, "attendee_count", count)...)
	case errors.Is(err, repository.ErrNotFound):
		s.metrics.ObserveRSVP(op, metrics.OutcomeNotFound)
		s.logger.WarnContext(ctx, "rsvp for unknown event", attrs...)
	case errors.Is(err, repository.ErrNothingToCancel):
		s.metrics.ObserveRSVP(op, metrics.OutcomeNothingToCancel)
		s.logger.WarnContext(ctx, "rsvp cancel at zero", attrs...)
	default:
		s.metrics.ObserveRSVP(op, metrics.OutcomeUnavailable)
		s.logger.ErrorContext(ctx, "rsvp store failure", append(attrs, "error", err)...)
	}
}
