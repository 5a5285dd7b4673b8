// internal/dashboard/loader.go
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/halicare/clinicdash/internal/models"
)

type UserSource interface {
	List(ctx context.Context) ([]models.User, error)
}

type AppointmentSource interface {
	List(ctx context.Context) ([]models.Appointment, error)
}

type ServiceSource interface {
	List(ctx context.Context) ([]models.Service, error)
}

// Data holds the three resolved collections a dashboard render needs.
type Data struct {
	Users        []models.User
	Appointments []models.Appointment
	Services     []models.Service
}

// Metrics aggregates the loaded collections.
func (d Data) Metrics() Metrics {
	return Aggregate(d.Users, d.Appointments, d.Services)
}

// Loader fetches the three source collections concurrently. The dashboard
// never aggregates partial data: one failed fetch fails the whole load.
type Loader struct {
	users        UserSource
	appointments AppointmentSource
	services     ServiceSource
}

func NewLoader(users UserSource, appointments AppointmentSource, services ServiceSource) *Loader {
	return &Loader{users: users, appointments: appointments, services: services}
}

func (l *Loader) Load(ctx context.Context) (Data, error) {
	g, ctx := errgroup.WithContext(ctx)

	var data Data
	g.Go(func() error {
		users, err := l.users.List(ctx)
		if err != nil {
			return err
		}
		data.Users = users
		return nil
	})
	g.Go(func() error {
		appointments, err := l.appointments.List(ctx)
		if err != nil {
			return err
		}
		data.Appointments = appointments
		return nil
	})
	g.Go(func() error {
		services, err := l.services.List(ctx)
		if err != nil {
			return err
		}
		data.Services = services
		return nil
	})

	if err := g.Wait(); err != nil {
		return Data{}, err
	}
	return data, nil
}
