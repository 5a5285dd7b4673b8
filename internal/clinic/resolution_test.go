package clinic

import (
	"context"
	"errors"
	"testing"

	"github.com/halicare/clinicdash/internal/models"
)

type fakeCenters struct {
	centers []models.Center
	err     error

	created []models.CenterDraft
}

func (f *fakeCenters) ListByUser(ctx context.Context, userID string) ([]models.Center, error) {
	return f.centers, f.err
}

func (f *fakeCenters) Create(ctx context.Context, draft models.CenterDraft) (models.Center, error) {
	f.created = append(f.created, draft)
	return models.Center{ID: "c1", Name: draft.Name}, nil
}

func TestResolveRouting(t *testing.T) {
	tests := []struct {
		name      string
		centers   []models.Center
		wantState State
		wantPath  string
	}{
		{
			name:      "no_centers_routes_to_registration",
			centers:   nil,
			wantState: NoClinic,
			wantPath:  "/clinic_registration",
		},
		{
			name:      "one_center_routes_to_dashboard",
			centers:   []models.Center{{ID: "1", Name: "HaliCare Test Clinic"}},
			wantState: HasClinic,
			wantPath:  "/dashboard",
		},
		{
			name: "entry_count_beyond_one_is_irrelevant",
			centers: []models.Center{
				{ID: "1", Name: "First"},
				{ID: "2", Name: "Second"},
			},
			wantState: HasClinic,
			wantPath:  "/dashboard",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resolver := NewResolver(&fakeCenters{centers: test.centers})

			resolution, err := resolver.Resolve(context.Background(), "12345")
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if resolution.State != test.wantState {
				t.Fatalf("State = %v, want %v", resolution.State, test.wantState)
			}
			if got := resolution.Route().Path(); got != test.wantPath {
				t.Fatalf("Route().Path() = %q, want %q", got, test.wantPath)
			}
		})
	}
}

func TestResolveFailureYieldsNoRoute(t *testing.T) {
	lookupErr := errors.New("upstream unavailable")
	resolver := NewResolver(&fakeCenters{err: lookupErr})

	_, err := resolver.Resolve(context.Background(), "12345")
	if !errors.Is(err, lookupErr) {
		t.Fatalf("error = %v, want the lookup failure propagated", err)
	}
}

func TestResolveRequiresUserID(t *testing.T) {
	resolver := NewResolver(&fakeCenters{})

	if _, err := resolver.Resolve(context.Background(), ""); err == nil {
		t.Fatal("expected error for missing user id")
	}
}

func TestRegisterClinic(t *testing.T) {
	directory := &fakeCenters{}
	resolver := NewResolver(directory)

	center, err := resolver.RegisterClinic(context.Background(), models.CenterDraft{
		Name:        "HaliCare Test Clinic",
		Contact:     "1234567890",
		Address:     "123 Health Street",
		OpeningTime: "08:00",
		ClosingTime: "17:00",
	})
	if err != nil {
		t.Fatalf("RegisterClinic: %v", err)
	}
	if center.ID == "" {
		t.Fatal("expected a server-assigned center id")
	}
	if len(directory.created) != 1 {
		t.Fatalf("created %d clinics, want 1", len(directory.created))
	}
}

func TestRegisterClinicRequiresName(t *testing.T) {
	resolver := NewResolver(&fakeCenters{})

	if _, err := resolver.RegisterClinic(context.Background(), models.CenterDraft{}); err == nil {
		t.Fatal("expected error for missing clinic name")
	}
}
