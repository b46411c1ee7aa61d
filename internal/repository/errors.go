package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("not found")

// ErrNothingToCancel is returned when a cancellation is attempted on an event
// whose attendee count is already 0.
var ErrNothingToCancel = errors.New("no RSVPs to cancel")

// ErrStoreUnavailable is returned when the store could not execute an
// operation. Nothing was written; callers may retry.
var ErrStoreUnavailable = errors.New("event store unavailable")

// unavailable tags a driver error so callers can match ErrStoreUnavailable
// while the original cause stays inspectable.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}

// newEvent builds the record inserted by every backend's Create. Timestamps
// are truncated to milliseconds so they round-trip through every store.
func newEvent(req model.CreateEventRequest) *model.Event {
	return &model.Event{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Description:   req.Description,
		Location:      req.Location,
		Category:      req.Category,
		DateTime:      req.DateTime.UTC().Truncate(time.Millisecond),
		ImageURI:      req.ImageURI,
		AttendeeCount: 0,
		CreatedAt:     time.Now().UTC().Truncate(time.Millisecond),
	}
}
