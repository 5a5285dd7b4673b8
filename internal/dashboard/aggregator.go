// internal/dashboard/aggregator.go

// Package dashboard turns the raw user, appointment, and service
// collections into the summary metrics and chart series the dashboard page
// shows. Aggregation is a pure function of its inputs and recomputes fully
// on every call; the collections are small and refreshed per page load.
package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/halicare/clinicdash/internal/models"
)

// UnknownServiceLabel stands in for a service id no loaded service resolves.
// The row is kept rather than dropped.
const UnknownServiceLabel = "Unknown service"

type StatusCount struct {
	Status string
	Count  int
}

type ServiceCount struct {
	ServiceID   string
	ServiceName string
	Count       int
}

// MonthCount is one bar of the monthly patients chart. Month is the first
// day of the month in UTC.
type MonthCount struct {
	Month    time.Time
	Patients int
}

// Label formats the month for the chart axis.
func (m MonthCount) Label() string {
	return m.Month.Format("Jan 2006")
}

type Metrics struct {
	TotalPatients   int
	StatusBreakdown []StatusCount
	ServiceUsage    []ServiceCount
	MonthlySeries   []MonthCount
}

// Aggregate computes all dashboard metrics from the three base collections.
func Aggregate(users []models.User, appointments []models.Appointment, services []models.Service) Metrics {
	return Metrics{
		TotalPatients:   TotalPatients(users, appointments),
		StatusBreakdown: StatusBreakdown(appointments),
		ServiceUsage:    ServiceUsage(appointments, services),
		MonthlySeries:   MonthlySeries(users, appointments),
	}
}

// TotalPatients counts distinct patient accounts holding at least one
// appointment: the intersection of patient user ids and appointment user
// ids. A patient with no appointments does not count, and an appointment
// referencing a non-patient account does not count.
func TotalPatients(users []models.User, appointments []models.Appointment) int {
	patientIDs := patientIDSet(users)
	seen := make(map[string]bool)
	total := 0
	for _, appt := range appointments {
		if patientIDs[appt.UserID] && !seen[appt.UserID] {
			seen[appt.UserID] = true
			total++
		}
	}
	return total
}

// StatusBreakdown counts appointments per booking status. The three known
// labels are compared case-insensitively and reported in their canonical
// spelling; unrecognized statuses keep their own bucket. The counts always
// partition the input.
func StatusBreakdown(appointments []models.Appointment) []StatusCount {
	counts := make(map[string]int)
	for _, appt := range appointments {
		counts[canonicalStatus(appt.BookingStatus)]++
	}

	breakdown := make([]StatusCount, 0, len(counts))
	for _, status := range []string{models.StatusUpcoming, models.StatusCompleted, models.StatusCancelled} {
		if n, ok := counts[status]; ok {
			breakdown = append(breakdown, StatusCount{Status: status, Count: n})
			delete(counts, status)
		}
	}

	rest := make([]string, 0, len(counts))
	for status := range counts {
		rest = append(rest, status)
	}
	sort.Strings(rest)
	for _, status := range rest {
		breakdown = append(breakdown, StatusCount{Status: status, Count: counts[status]})
	}
	return breakdown
}

func canonicalStatus(status string) string {
	for _, known := range []string{models.StatusUpcoming, models.StatusCompleted, models.StatusCancelled} {
		if strings.EqualFold(status, known) {
			return known
		}
	}
	return status
}

// ServiceUsage counts appointments per service, resolving names against the
// loaded services. A dangling service id gets the placeholder label instead
// of being omitted. Rows are ordered by count descending, then name.
func ServiceUsage(appointments []models.Appointment, services []models.Service) []ServiceCount {
	names := make(map[string]string, len(services))
	for _, svc := range services {
		names[svc.ID] = svc.Name
	}

	counts := make(map[string]int)
	for _, appt := range appointments {
		counts[appt.ServiceID]++
	}

	usage := make([]ServiceCount, 0, len(counts))
	for id, n := range counts {
		name, ok := names[id]
		if !ok || name == "" {
			name = UnknownServiceLabel
		}
		usage = append(usage, ServiceCount{ServiceID: id, ServiceName: name, Count: n})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Count != usage[j].Count {
			return usage[i].Count > usage[j].Count
		}
		if usage[i].ServiceName != usage[j].ServiceName {
			return usage[i].ServiceName < usage[j].ServiceName
		}
		return usage[i].ServiceID < usage[j].ServiceID
	})
	return usage
}

// MonthlySeries buckets distinct patients by the calendar month of their
// appointments, ascending, with zero-count months filled in so the chart
// axis stays continuous.
func MonthlySeries(users []models.User, appointments []models.Appointment) []MonthCount {
	patientIDs := patientIDSet(users)

	byMonth := make(map[time.Time]map[string]bool)
	var first, last time.Time
	for _, appt := range appointments {
		if !patientIDs[appt.UserID] || appt.Date.IsZero() {
			continue
		}
		month := startOfMonth(appt.Date)
		if byMonth[month] == nil {
			byMonth[month] = make(map[string]bool)
		}
		byMonth[month][appt.UserID] = true
		if first.IsZero() || month.Before(first) {
			first = month
		}
		if last.IsZero() || month.After(last) {
			last = month
		}
	}
	if first.IsZero() {
		return nil
	}

	var series []MonthCount
	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		series = append(series, MonthCount{Month: month, Patients: len(byMonth[month])})
	}
	return series
}

func patientIDSet(users []models.User) map[string]bool {
	ids := make(map[string]bool, len(users))
	for _, u := range users {
		if u.IsPatient() {
			ids[u.ID] = true
		}
	}
	return ids
}

func startOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
