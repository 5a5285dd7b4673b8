package listctl

import (
	"testing"

	"github.com/halicare/clinicdash/internal/models"
)

func appointmentFixtures() ([]models.Appointment, []models.User, []models.Service) {
	appointments := []models.Appointment{
		{ID: "1", UserID: "1", ServiceID: "1", BookingStatus: "Upcoming"},
		{ID: "2", UserID: "1", ServiceID: "2", BookingStatus: "Completed"},
		{ID: "3", UserID: "2", ServiceID: "1", BookingStatus: "Completed"},
		{ID: "4", UserID: "4", ServiceID: "3", BookingStatus: "Cancelled"},
	}
	users := []models.User{
		{ID: "1", Type: "patient", FirstName: "Alice", LastName: "Smith"},
		{ID: "2", Type: "patient", FirstName: "Bob", LastName: "Jones"},
		{ID: "4", Type: "patient", FirstName: "Charlie", LastName: "Brown"},
	}
	services := []models.Service{
		{ID: "1", Name: "ARV Refills"},
		{ID: "2", Name: "Counselling"},
	}
	return appointments, users, services
}

func TestBuildAppointmentRowsResolvesNames(t *testing.T) {
	appointments, users, services := appointmentFixtures()

	rows := BuildAppointmentRows(appointments, users, services)
	if len(rows) != len(appointments) {
		t.Fatalf("built %d rows, want %d", len(rows), len(appointments))
	}
	if rows[0].PatientName != "Alice Smith" || rows[0].ServiceName != "ARV Refills" {
		t.Fatalf("rows[0] = %+v", rows[0])
	}
	// Service id 3 has no loaded service; the row stays with a placeholder.
	if rows[3].ServiceName != UnknownServiceLabel {
		t.Fatalf("rows[3].ServiceName = %q, want %q", rows[3].ServiceName, UnknownServiceLabel)
	}
}

func TestBuildAppointmentRowsUnknownPatient(t *testing.T) {
	rows := BuildAppointmentRows(
		[]models.Appointment{{ID: "1", UserID: "ghost", ServiceID: "1"}},
		nil,
		[]models.Service{{ID: "1", Name: "ARV Refills"}},
	)
	if len(rows) != 1 || rows[0].PatientName != UnknownPatientLabel {
		t.Fatalf("rows = %+v, want a placeholder patient row", rows)
	}
}

func TestAppointmentListTabFiltering(t *testing.T) {
	appointments, users, services := appointmentFixtures()
	list := NewAppointmentList(5)
	list.SetItems(BuildAppointmentRows(appointments, users, services))

	list.SetTab(models.StatusCompleted)
	filtered := list.Filtered()
	if len(filtered) != 2 {
		t.Fatalf("Completed tab shows %d rows, want 2", len(filtered))
	}
	for _, r := range filtered {
		if r.Appointment.BookingStatus != models.StatusCompleted {
			t.Fatalf("row %+v leaked into Completed tab", r)
		}
	}
}

func TestAppointmentListSearchesPatientName(t *testing.T) {
	appointments, users, services := appointmentFixtures()
	list := NewAppointmentList(5)
	list.SetItems(BuildAppointmentRows(appointments, users, services))

	list.SetSearch("alice")
	filtered := list.Filtered()
	if len(filtered) != 2 {
		t.Fatalf("search matched %d rows, want 2", len(filtered))
	}

	list.SetSearch("nobody matches this")
	message, empty := list.EmptyState()
	if !empty || message != "No appointments found" {
		t.Fatalf("EmptyState() = %q, %v", message, empty)
	}
}

func TestAppointmentTabs(t *testing.T) {
	tabs := AppointmentTabs()
	want := []string{TabAll, models.StatusUpcoming, models.StatusCompleted, models.StatusCancelled}
	if len(tabs) != len(want) {
		t.Fatalf("tabs = %v", tabs)
	}
	for i := range want {
		if tabs[i] != want[i] {
			t.Fatalf("tabs[%d] = %q, want %q", i, tabs[i], want[i])
		}
	}
}
