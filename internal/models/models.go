// internal/models/models.go
package models

import (
	"strings"
	"time"
)

// Booking statuses as the backend spells them. Comparison is done
// case-insensitively where display labels are involved; unrecognized
// statuses are carried through untouched, never dropped.
const (
	StatusUpcoming  = "Upcoming"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Service availability values.
const (
	ServiceAvailable    = "Available"
	ServiceNotAvailable = "Not Available"
)

// User is the read-only account projection returned by GET /api/users.
// The dashboard never mutates users.
type User struct {
	ID          string `json:"user_id"`
	Type        string `json:"user_type"`
	Email       string `json:"email,omitempty"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// IsPatient reports whether the account is a patient. The backend returns
// both "patient" and "PATIENT" depending on the endpoint.
func (u User) IsPatient() bool {
	return strings.EqualFold(u.Type, "patient")
}

// DisplayName joins first and last name, tolerating a blank last name.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Appointment links a user to a service at a point in time.
// UserID and ServiceID are resolved against the concurrently loaded
// collections for display; dangling references degrade to a placeholder.
type Appointment struct {
	ID            string    `json:"appointment_id"`
	UserID        string    `json:"user_id"`
	ServiceID     string    `json:"service_id"`
	BookingStatus string    `json:"booking_status"`
	Date          time.Time `json:"appointment_date"`
}

// Service is the one entity the dashboard mutates. IDs are assigned by the
// server; the client never invents one.
type Service struct {
	ID          string `json:"service_id"`
	Name        string `json:"service_name"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
}

// ServiceDraft is the client-supplied portion of a service, used for both
// create and update bodies.
type ServiceDraft struct {
	Name        string `json:"service_name"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
}

// Center is a clinic record owned by a clinician account. Presence of at
// least one center gates dashboard access after login.
type Center struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Contact     string `json:"contact,omitempty"`
	Address     string `json:"address,omitempty"`
	OpeningTime string `json:"opening_time,omitempty"`
	ClosingTime string `json:"closing_time,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// CenterDraft is the clinic-registration form payload.
type CenterDraft struct {
	UserID      string `json:"user_id,omitempty"`
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	Address     string `json:"address"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
	ImageURL    string `json:"image_url,omitempty"`
}
