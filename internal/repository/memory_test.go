package repository

import (
	"context"
	"testing"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"github.com/stretchr/testify/require"
)

func TestMemoryEventRepository(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return NewMemoryEventRepository()
	})
}

func TestMemoryEventRepository_CancelledContext(t *testing.T) {
	s := NewMemoryEventRepository()
	e, err := s.Create(context.Background(), model.CreateEventRequest{Name: "Kwanzaa Celebration"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.IncrementAttendees(ctx, e.ID)
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.ErrorIs(t, err, context.Canceled)

	got, err := s.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.AttendeeCount)
}

func TestMemoryEventRepository_GetReturnsCopy(t *testing.T) {
	s := NewMemoryEventRepository()
	e, err := s.Create(context.Background(), model.CreateEventRequest{Name: "Carnival"})
	require.NoError(t, err)

	got, err := s.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	got.AttendeeCount = -5

	again, err := s.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	require.Equal(t, 0, again.AttendeeCount)
}
