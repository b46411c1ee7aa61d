// Package model defines the core domain types for the campus events service.
package model

import "time"

// Event categories shown as filters in the client.
const (
	CategorySocial      = "Social"
	CategoryFestivities = "Festivities"
	CategoryNetworking  = "Networking"
)

// Event represents a scheduled campus gathering.
//
// AttendeeCount starts at 0 and is only ever changed through the RSVP
// counter operations; it never goes negative.
type Event struct {
	ID            string    `json:"id"             bson:"_id"`
	Name          string    `json:"name"           bson:"name"`
	Description   string    `json:"description"    bson:"description"`
	Location      string    `json:"location"       bson:"location"`
	Category      string    `json:"category"       bson:"category"`
	DateTime      time.Time `json:"date_time"      bson:"dateTime"`
	ImageURI      string    `json:"image_uri"      bson:"imageUri"`
	AttendeeCount int       `json:"attendee_count" bson:"numberOfAttendees"`
	CreatedAt     time.Time `json:"created_at"     bson:"createdAt"`
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	DateTime    time.Time `json:"date_time"`
	ImageURI    string    `json:"image_uri"`
}

// RSVPResponse is returned by the RSVP and cancel-RSVP endpoints.
type RSVPResponse struct {
	EventID       string `json:"event_id"`
	AttendeeCount int    `json:"attendee_count"`
	Message       string `json:"message"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RSVPResult summarises the outcome of a single counter call.
// Used in the concurrent test harness.
type RSVPResult struct {
	Operation string
	Success   bool
	Count     int
	Error     error
}
