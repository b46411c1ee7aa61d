// Package seed loads a fixed set of sample campus events into an empty store.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// Store is the subset of the event store seeding needs.
type Store interface {
	Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SampleEvents is the fall-semester demo calendar.
var SampleEvents = []model.CreateEventRequest{
	{
		Name:        "Caribbean Welcome Mixer",
		DateTime:    at("2024-09-06T18:00:00Z"),
		Location:    "Willard Straight Hall, Memorial Room",
		Description: "A social event at the start of the semester to introduce new and returning Caribbean students to each other.",
		Category:    model.CategorySocial,
		ImageURI:    "/images/welcomemixer.jpg",
	},
	{
		Name:        "Black & Caribbean Student Organization Fair",
		DateTime:    at("2024-09-10T17:30:00Z"),
		Location:    "Africana Center Lawn",
		Description: "A networking event where students can explore different Black and Caribbean student organizations on campus.",
		Category:    model.CategoryNetworking,
		ImageURI:    "/images/lawn.jpg",
	},
	{
		Name:        "Island Vibes Night",
		DateTime:    at("2024-09-15T20:00:00Z"),
		Location:    "Appel Commons Multipurpose Room",
		Description: "A cultural party featuring Caribbean music (dancehall, soca, reggae, kompa, zouk), food, and games.",
		Category:    model.CategoryFestivities,
		ImageURI:    "/images/caribbeanparty.jpg",
	},
	{
		Name:        "Black Student Cookout",
		DateTime:    at("2024-09-29T16:00:00Z"),
		Location:    "North Campus Courtyard",
		Description: "A casual BBQ gathering for Black and Caribbean students to connect over good food and music.",
		Category:    model.CategorySocial,
		ImageURI:    "/images/cookout.jpg",
	},
	{
		Name:        "Carnival at Cornell",
		DateTime:    at("2024-10-12T14:00:00Z"),
		Location:    "Ho Plaza",
		Description: "A Caribbean carnival experience with vibrant costumes, performances, and cultural displays.",
		Category:    model.CategoryFestivities,
		ImageURI:    "/images/carnival.jpg",
	},
	{
		Name:        "Black & Caribbean Leadership Summit",
		DateTime:    at("2024-11-09T09:00:00Z"),
		Location:    "Statler Hotel Ballroom",
		Description: "A conference bringing together student leaders and professionals from various fields.",
		Category:    model.CategoryNetworking,
		ImageURI:    "/images/infosession.jpg",
	},
	{
		Name:        "Black Mental Health & Wellness Circle",
		DateTime:    at("2024-12-12T19:00:00Z"),
		Location:    "Cornell Health, Room 110",
		Description: "A space to discuss mental health, self-care, and well-being in a supportive community.",
		Category:    model.CategorySocial,
		ImageURI:    "/images/wellnesscircle.jpg",
	},
	{
		Name:        "Kwanzaa Celebration",
		DateTime:    at("2024-12-26T16:00:00Z"),
		Location:    "Africana Center",
		Description: "A community gathering to celebrate the principles of Kwanzaa.",
		Category:    model.CategoryFestivities,
		ImageURI:    "/images/kwanza.jpg",
	},
}

// IfEmpty inserts SampleEvents when the store holds no events and returns
// how many were inserted.
func IfEmpty(ctx context.Context, store Store, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	existing, err := store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("check existing events: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("seed skipped, store not empty", "events", len(existing))
		return 0, nil
	}

	for i, req := range SampleEvents {
		if _, err := store.Create(ctx, req); err != nil {
			return i, fmt.Errorf("seed %q: %w", req.Name, err)
		}
	}
	logger.Info("seeded sample events", "events", len(SampleEvents))
	return len(SampleEvents), nil
}
