package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// SQLiteEventRepository stores events in an embedded SQLite database.
// Timestamps are kept as Unix milliseconds.
type SQLiteEventRepository struct {
	db *sql.DB
}

// NewSQLiteEventRepository wraps a handle opened by database.OpenSQLite.
func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

const sqliteEventColumns = `id, name, description, location, category, date_time, image_uri, attendee_count, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteEvent(row rowScanner) (model.Event, error) {
	var (
		e                   model.Event
		dateTime, createdAt int64
	)
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Location, &e.Category,
		&dateTime, &e.ImageURI, &e.AttendeeCount, &createdAt)
	if err != nil {
		return model.Event{}, err
	}
	e.DateTime = fromMillis(dateTime)
	e.CreatedAt = fromMillis(createdAt)
	return e, nil
}

// Create inserts a new event with a generated UUID and a zero attendee count.
func (r *SQLiteEventRepository) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	event := newEvent(req)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (`+sqliteEventColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Name, event.Description, event.Location, event.Category,
		toMillis(event.DateTime), event.ImageURI, event.AttendeeCount, toMillis(event.CreatedAt),
	)
	if err != nil {
		return nil, unavailable("insert event", err)
	}
	return event, nil
}

// List returns all events ordered by creation time descending.
func (r *SQLiteEventRepository) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sqliteEventColumns+` FROM events ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, unavailable("list events", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanSQLiteEvent(rows)
		if err != nil {
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
func (r *SQLiteEventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanSQLiteEvent(r.db.QueryRowContext(ctx,
		`SELECT `+sqliteEventColumns+` FROM events WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, unavailable("get event", err)
	}
	return &e, nil
}

// IncrementAttendees adds one attendee and returns the new count.
func (r *SQLiteEventRepository) IncrementAttendees(ctx context.Context, id string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`UPDATE events SET attendee_count = attendee_count + 1
		 WHERE id = ?
		 RETURNING attendee_count`,
		id,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, unavailable("increment attendee_count", err)
	}
	return count, nil
}

// DecrementAttendees removes one attendee if the count is above zero. The
// floor test is part of the UPDATE, which SQLite runs under its write lock.
func (r *SQLiteEventRepository) DecrementAttendees(ctx context.Context, id string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`UPDATE events SET attendee_count = attendee_count - 1
		 WHERE id = ? AND attendee_count > 0
		 RETURNING attendee_count`,
		id,
	).Scan(&count)
	if err == nil {
		return count, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, unavailable("decrement attendee_count", err)
	}

	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM events WHERE id = ?)`, id,
	).Scan(&exists)
	if err != nil {
		return 0, unavailable("classify decrement miss", err)
	}
	if !exists {
		return 0, ErrNotFound
	}
	return 0, ErrNothingToCancel
}

// Ping checks that the database handle is usable.
func (r *SQLiteEventRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database handle.
func (r *SQLiteEventRepository) Close() error {
	return r.db.Close()
}
