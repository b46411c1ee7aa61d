package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"github.com/Shivanand-hulikatti/campus-events/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateEvent(t *testing.T) {
	svc := NewEventService(repository.NewMemoryEventRepository())

	e, err := svc.CreateEvent(context.Background(), model.CreateEventRequest{
		Name:     "  Carnival at Cornell ",
		Location: "Ho Plaza",
		Category: model.CategoryFestivities,
	})
	require.NoError(t, err)
	require.Equal(t, "Carnival at Cornell", e.Name)
	require.Equal(t, 0, e.AttendeeCount)
}

func TestCreateEvent_Validation(t *testing.T) {
	svc := NewEventService(repository.NewMemoryEventRepository())

	tests := []struct {
		name string
		req  model.CreateEventRequest
		want string
	}{
		{"missing name", model.CreateEventRequest{Name: "  "}, "name is required"},
		{"long name", model.CreateEventRequest{Name: strings.Repeat("x", maxNameLength+1)}, "cannot exceed"},
		{"bad category", model.CreateEventRequest{Name: "Mixer", Category: "Sports"}, "category must be one of"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateEvent(context.Background(), tc.req)
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestGetEvent(t *testing.T) {
	repo := repository.NewMemoryEventRepository()
	svc := NewEventService(repo)
	created, err := svc.CreateEvent(context.Background(), model.CreateEventRequest{Name: "Movie Night"})
	require.NoError(t, err)

	got, err := svc.GetEvent(context.Background(), strings.ToUpper(created.ID))
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	_, err = svc.GetEvent(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.GetEvent(context.Background(), "nope")
	require.ErrorIs(t, err, ErrInvalidEventID)
}

func TestListEvents(t *testing.T) {
	svc := NewEventService(repository.NewMemoryEventRepository())

	events, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	require.Empty(t, events)

	_, err = svc.CreateEvent(context.Background(), model.CreateEventRequest{Name: "Cookout"})
	require.NoError(t, err)
	events, err = svc.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
}
