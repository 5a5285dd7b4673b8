// internal/repo/appointments.go
package repo

import (
	"context"
	"fmt"

	"github.com/halicare/clinicdash/internal/httpclient"
	"github.com/halicare/clinicdash/internal/models"
)

// Appointments reads the appointment collection. Filtering happens client
// side; the endpoint returns the full array.
type Appointments struct {
	client *httpclient.Client
}

func NewAppointments(client *httpclient.Client) *Appointments {
	return &Appointments{client: client}
}

func (r *Appointments) List(ctx context.Context) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if err := r.client.GetJSON(ctx, "/api/appointments", nil, &appointments); err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return appointments, nil
}
