// Package repository implements event persistence and the atomic attendee
// counter for every supported store. The PostgreSQL implementation uses pgx
// directly (no ORM).
package repository

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the full surface a backend offers to the service layer.
type Store interface {
	Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	IncrementAttendees(ctx context.Context, id string) (int, error)
	DecrementAttendees(ctx context.Context, id string) (int, error)
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*EventRepository)(nil)
	_ Store = (*SQLiteEventRepository)(nil)
	_ Store = (*MongoEventRepository)(nil)
	_ Store = (*MemoryEventRepository)(nil)
)

// EventRepository handles persistence for events in PostgreSQL.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event with a generated UUID and a zero attendee count.
func (r *EventRepository) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	event := newEvent(req)

	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, name, description, location, category, date_time, image_uri, attendee_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		event.ID, event.Name, event.Description, event.Location, event.Category,
		event.DateTime, event.ImageURI, event.AttendeeCount, event.CreatedAt,
	)
	if err != nil {
		return nil, unavailable("insert event", err)
	}
	return event, nil
}

// List returns all events ordered by creation time descending.
func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, location, category, date_time, image_uri, attendee_count, created_at
		 FROM events
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, unavailable("list events", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Location, &e.Category,
			&e.DateTime, &e.ImageURI, &e.AttendeeCount, &e.CreatedAt); err != nil {
			return nil, unavailable("scan event", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list events", err)
	}
	return events, nil
}

// GetByID returns a single event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, location, category, date_time, image_uri, attendee_count, created_at
		 FROM events WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Name, &e.Description, &e.Location, &e.Category,
		&e.DateTime, &e.ImageURI, &e.AttendeeCount, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, unavailable("get event", err)
	}
	return &e, nil
}

// IncrementAttendees adds one attendee and returns the new count.
//
// The addition is evaluated by PostgreSQL inside a single UPDATE, so
// concurrent increments queue on the row lock and none are lost.
func (r *EventRepository) IncrementAttendees(ctx context.Context, id string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`UPDATE events SET attendee_count = attendee_count + 1
		 WHERE id = $1
		 RETURNING attendee_count`,
		id,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, unavailable("increment attendee_count", err)
	}
	return count, nil
}

// DecrementAttendees removes one attendee if the count is above zero.
//
// ─────────────────────────────────────────────────────────────────────────────
// WHY NOT READ, CHECK, THEN WRITE
// ─────────────────────────────────────────────────────────────────────────────
//
//	caller A: SELECT attendee_count … → 1
//	caller B: SELECT attendee_count … → 1
//	caller A: 1 > 0, OK → UPDATE attendee_count = attendee_count - 1  → 0
//	caller B: 1 > 0, OK → UPDATE attendee_count = attendee_count - 1  → -1
//
// Both callers tested a snapshot that was already stale when they wrote.
//
// The floor test lives in the UPDATE's WHERE clause instead. The row lock
// taken by the UPDATE serialises concurrent callers, and under READ COMMITTED
// the second caller re-evaluates `attendee_count > 0` against the row the
// first one committed, so it matches nothing and no row is returned.
//
// Only after a miss do we look at the row again, purely to tell "no such
// event" apart from "already at zero". That read never writes.
// ─────────────────────────────────────────────────────────────────────────────
func (r *EventRepository) DecrementAttendees(ctx context.Context, id string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`UPDATE events SET attendee_count = attendee_count - 1
		 WHERE id = $1 AND attendee_count > 0
		 RETURNING attendee_count`,
		id,
	).Scan(&count)
	if err == nil {
		return count, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, unavailable("decrement attendee_count", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`,
		id,
	).Scan(&exists)
	if err != nil {
		return 0, unavailable("classify decrement miss", err)
	}
	if !exists {
		return 0, ErrNotFound
	}
	return 0, ErrNothingToCancel
}

// Ping checks that the pool can reach the database.
func (r *EventRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Close releases the pool.
func (r *EventRepository) Close() error {
	r.db.Close()
	return nil
}
