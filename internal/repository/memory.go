package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// MemoryEventRepository keeps events in process memory. Every counter
// operation holds the write lock across its check and its write.
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events map[string]*model.Event
}

// NewMemoryEventRepository returns an empty in-memory store.
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{events: make(map[string]*model.Event)}
}

// Create inserts a new event with a generated UUID and a zero attendee count.
func (r *MemoryEventRepository) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("insert event", err)
	}
	event := newEvent(req)

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *event
	r.events[event.ID] = &stored
	return event, nil
}

// List returns all events ordered by creation time descending.
func (r *MemoryEventRepository) List(ctx context.Context) ([]model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("list events", err)
	}

	r.mu.RLock()
	events := make([]model.Event, 0, len(r.events))
	for _, e := range r.events {
		events = append(events, *e)
	}
	r.mu.RUnlock()

	slices.SortFunc(events, func(a, b model.Event) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return events, nil
}

// GetByID returns a copy of a single event or ErrNotFound.
func (r *MemoryEventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("get event", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *e
	return &out, nil
}

// IncrementAttendees adds one attendee and returns the new count.
func (r *MemoryEventRepository) IncrementAttendees(ctx context.Context, id string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, unavailable("increment attendees", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return 0, ErrNotFound
	}
	e.AttendeeCount++
	return e.AttendeeCount, nil
}

// DecrementAttendees removes one attendee if the count is above zero.
func (r *MemoryEventRepository) DecrementAttendees(ctx context.Context, id string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, unavailable("decrement attendees", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return 0, ErrNotFound
	}
	if e.AttendeeCount <= 0 {
		return 0, ErrNothingToCancel
	}
	e.AttendeeCount--
	return e.AttendeeCount, nil
}

// Ping always succeeds.
func (r *MemoryEventRepository) Ping(context.Context) error { return nil }

// Close is a no-op.
func (r *MemoryEventRepository) Close() error { return nil }
