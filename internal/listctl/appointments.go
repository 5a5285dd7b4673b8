// internal/listctl/appointments.go
package listctl

import (
	"github.com/halicare/clinicdash/internal/models"
)

// Placeholder labels for references the loaded collections cannot resolve.
// Rows with dangling references still render.
const (
	UnknownPatientLabel = "Unknown patient"
	UnknownServiceLabel = "Unknown service"
)

// AppointmentRow is one table row on the appointments page: the appointment
// joined with its resolved patient and service names.
type AppointmentRow struct {
	Appointment models.Appointment
	PatientName string
	ServiceName string
}

// BuildAppointmentRows resolves appointment references against the loaded
// user and service collections, degrading to placeholders instead of
// dropping rows.
func BuildAppointmentRows(appointments []models.Appointment, users []models.User, services []models.Service) []AppointmentRow {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName()
	}
	serviceNames := make(map[string]string, len(services))
	for _, svc := range services {
		serviceNames[svc.ID] = svc.Name
	}

	rows := make([]AppointmentRow, 0, len(appointments))
	for _, appt := range appointments {
		row := AppointmentRow{
			Appointment: appt,
			PatientName: names[appt.UserID],
			ServiceName: serviceNames[appt.ServiceID],
		}
		if row.PatientName == "" {
			row.PatientName = UnknownPatientLabel
		}
		if row.ServiceName == "" {
			row.ServiceName = UnknownServiceLabel
		}
		rows = append(rows, row)
	}
	return rows
}

// AppointmentTabs are the status tabs the appointments page offers.
func AppointmentTabs() []string {
	return []string{TabAll, models.StatusUpcoming, models.StatusCompleted, models.StatusCancelled}
}

// NewAppointmentList builds the appointments page controller: search by
// resolved patient name, status tabs, fixed page size.
func NewAppointmentList(pageSize int) *Controller[AppointmentRow] {
	return New(Config[AppointmentRow]{
		PageSize:     pageSize,
		SearchText:   func(row AppointmentRow) string { return row.PatientName },
		Status:       func(row AppointmentRow) string { return row.Appointment.BookingStatus },
		EmptyMessage: "No appointments found",
	})
}
