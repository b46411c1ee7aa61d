// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"github.com/Shivanand-hulikatti/campus-events/internal/repository"
	"github.com/google/uuid"
)

// ErrInvalidEventID is returned when an identifier is not a UUID.
var ErrInvalidEventID = errors.New("invalid event id format")

const maxNameLength = 200

// EventStore is the persistence surface EventService needs.
type EventStore interface {
	Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
}

// EventService orchestrates event-related business operations.
type EventService struct {
	events EventStore
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events EventStore) *EventService {
	return &EventService{events: events}
}

// CreateEvent validates the request and delegates to the store. The new
// event always starts with an attendee count of 0.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Location = strings.TrimSpace(req.Location)
	req.Category = strings.TrimSpace(req.Category)
	req.ImageURI = strings.TrimSpace(req.ImageURI)

	if req.Name == "" {
		return nil, fmt.Errorf("event name is required")
	}
	if len(req.Name) > maxNameLength {
		return nil, fmt.Errorf("event name cannot exceed %d characters", maxNameLength)
	}
	if !isValidCategory(req.Category) {
		return nil, fmt.Errorf("category must be one of %s, %s or %s",
			model.CategorySocial, model.CategoryFestivities, model.CategoryNetworking)
	}
	return s.events.Create(ctx, req)
}

// ListEvents returns all events.
func (s *EventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.events.List(ctx)
}

// GetEvent returns a single event by ID.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	id, err := normalizeEventID(id)
	if err != nil {
		return nil, err
	}
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// normalizeEventID checks that id is a UUID and returns its canonical form.
func normalizeEventID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: event id is required", ErrInvalidEventID)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidEventID, id)
	}
	return parsed.String(), nil
}

func isValidCategory(c string) bool {
	switch c {
	case "", model.CategorySocial, model.CategoryFestivities, model.CategoryNetworking:
		return true
	}
	return false
}
