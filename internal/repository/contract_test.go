package repository

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the counter and event behaviour every backend
// must share. newStore must return an empty store.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()

	createEvent := func(t *testing.T, s Store) *model.Event {
		t.Helper()
		e, err := s.Create(context.Background(), model.CreateEventRequest{
			Name:     "Island Vibes Night",
			Location: "Appel Commons",
			Category: model.CategoryFestivities,
			DateTime: time.Date(2024, 9, 15, 20, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		return e
	}

	setCount := func(t *testing.T, s Store, id string, n int) {
		t.Helper()
		for i := 0; i < n; i++ {
			_, err := s.IncrementAttendees(context.Background(), id)
			require.NoError(t, err)
		}
	}

	t.Run("create starts at zero", func(t *testing.T) {
		s := newStore(t)
		e := createEvent(t, s)
		require.Equal(t, 0, e.AttendeeCount)
		_, err := uuid.Parse(e.ID)
		require.NoError(t, err)

		got, err := s.GetByID(context.Background(), e.ID)
		require.NoError(t, err)
		require.Equal(t, e.Name, got.Name)
		require.Equal(t, e.Category, got.Category)
		require.True(t, e.DateTime.Equal(got.DateTime))
		require.Equal(t, 0, got.AttendeeCount)
	})

	t.Run("list returns created events", func(t *testing.T) {
		s := newStore(t)
		a := createEvent(t, s)
		b := createEvent(t, s)

		events, err := s.List(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 2)
		ids := []string{events[0].ID, events[1].ID}
		require.ElementsMatch(t, []string{a.ID, b.ID}, ids)
	})

	t.Run("get unknown event", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetByID(context.Background(), uuid.NewString())
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("increment three times", func(t *testing.T) {
		s := newStore(t)
		e := createEvent(t, s)
		for want := 1; want <= 3; want++ {
			got, err := s.IncrementAttendees(context.Background(), e.ID)
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	})

	t.Run("decrement at zero", func(t *testing.T) {
		s := newStore(t)
		e := createEvent(t, s)

		_, err := s.DecrementAttendees(context.Background(), e.ID)
		require.ErrorIs(t, err, ErrNothingToCancel)

		got, err := s.GetByID(context.Background(), e.ID)
		require.NoError(t, err)
		require.Equal(t, 0, got.AttendeeCount)
	})

	t.Run("decrement from three", func(t *testing.T) {
		s := newStore(t)
		e := createEvent(t, s)
		setCount(t, s, e.ID, 3)

		got, err := s.DecrementAttendees(context.Background(), e.ID)
		require.NoError(t, err)
		require.Equal(t, 2, got)
	})

	t.Run("unknown event is not found", func(t *testing.T) {
		s := newStore(t)
		createEvent(t, s)
		missing := uuid.NewString()

		_, err := s.DecrementAttendees(context.Background(), missing)
		require.ErrorIs(t, err, ErrNotFound)
		require.False(t, errors.Is(err, ErrNothingToCancel))

		_, err = s.IncrementAttendees(context.Background(), missing)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("increment then decrement restores count", func(t *testing.T) {
		s := newStore(t)
		e := createEvent(t, s)
		setCount(t, s, e.ID, 4)

		_, err := s.IncrementAttendees(context.Background(), e.ID)
		require.NoError(t, err)
		got, err := s.DecrementAttendees(context.Background(), e.ID)
		require.NoError(t, err)
		require.Equal(t, 4, got)
	})

	t.Run("random sequence respects floor", func(t *testing.T) {
		s := newStore(t)
		e := createEvent(t, s)
		rng := rand.New(rand.NewSource(42))

		expected := 0
		for i := 0; i < 200; i++ {
			if rng.Intn(2) == 0 {
				got, err := s.IncrementAttendees(context.Background(), e.ID)
				require.NoError(t, err)
				expected++
				require.Equal(t, expected, got)
				continue
			}
			got, err := s.DecrementAttendees(context.Background(), e.ID)
			if expected == 0 {
				require.ErrorIs(t, err, ErrNothingToCancel)
				continue
			}
			require.NoError(t, err)
			expected--
			require.Equal(t, expected, got)
		}

		final, err := s.GetByID(context.Background(), e.ID)
		require.NoError(t, err)
		require.Equal(t, expected, final.AttendeeCount)
	})

	t.Run("two concurrent decrements at one", func(t *testing.T) {
		s := newStore(t)
		e := createEvent(t, s)
		setCount(t, s, e.ID, 1)

		results := runConcurrently(2, func(int) model.RSVPResult {
			n, err := s.DecrementAttendees(context.Background(), e.ID)
			return model.RSVPResult{Operation: "decrement", Success: err == nil, Count: n, Error: err}
		})

		var ok, floor int
		for _, r := range results {
			if r.Success {
				ok++
				require.Equal(t, 0, r.Count)
				continue
			}
			require.ErrorIs(t, r.Error, ErrNothingToCancel)
			floor++
		}
		require.Equal(t, 1, ok)
		require.Equal(t, 1, floor)

		final, err := s.GetByID(context.Background(), e.ID)
		require.NoError(t, err)
		require.Equal(t, 0, final.AttendeeCount)
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		s := newStore(t)
		e := createEvent(t, s)
		const n = 50

		results := runConcurrently(n, func(int) model.RSVPResult {
			c, err := s.IncrementAttendees(context.Background(), e.ID)
			return model.RSVPResult{Operation: "increment", Success: err == nil, Count: c, Error: err}
		})
		seen := make(map[int]bool, n)
		for _, r := range results {
			require.NoError(t, r.Error)
			require.False(t, seen[r.Count], "count %d returned twice", r.Count)
			seen[r.Count] = true
		}

		final, err := s.GetByID(context.Background(), e.ID)
		require.NoError(t, err)
		require.Equal(t, n, final.AttendeeCount)
	})

	t.Run("concurrent mixed calls net out", func(t *testing.T) {
		s := newStore(t)
		e := createEvent(t, s)
		setCount(t, s, e.ID, 5)
		const calls = 60

		results := runConcurrently(calls, func(i int) model.RSVPResult {
			if i%3 == 0 {
				c, err := s.IncrementAttendees(context.Background(), e.ID)
				return model.RSVPResult{Operation: "increment", Success: err == nil, Count: c, Error: err}
			}
			c, err := s.DecrementAttendees(context.Background(), e.ID)
			return model.RSVPResult{Operation: "decrement", Success: err == nil, Count: c, Error: err}
		})

		net := 5
		for _, r := range results {
			require.GreaterOrEqual(t, r.Count, 0)
			if r.Success {
				if r.Operation == "increment" {
					net++
				} else {
					net--
				}
				continue
			}
			require.Equal(t, "decrement", r.Operation)
			require.ErrorIs(t, r.Error, ErrNothingToCancel)
		}

		final, err := s.GetByID(context.Background(), e.ID)
		require.NoError(t, err)
		require.Equal(t, net, final.AttendeeCount)
		require.GreaterOrEqual(t, final.AttendeeCount, 0)
	})
}

// runConcurrently releases n goroutines at once and collects their results.
func runConcurrently(n int, fn func(i int) model.RSVPResult) []model.RSVPResult {
	results := make([]model.RSVPResult, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = fn(i)
		}(i)
	}
	close(start)
	wg.Wait()
	return results
}
