// internal/clinic/resolution.go

// Package clinic decides where a freshly logged-in account lands: accounts
// owning at least one clinic go to the dashboard, the rest go to clinic
// registration. Resolution is blocking; no page renders until it settles.
package clinic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/halicare/clinicdash/internal/models"
)

// State of a settled resolution. There is no unresolved state to route on:
// a failed lookup yields an error, never a Resolution.
type State int

const (
	NoClinic State = iota
	HasClinic
)

func (s State) String() string {
	if s == HasClinic {
		return "HAS_CLINIC"
	}
	return "NO_CLINIC"
}

// Route is the destination the caller navigates to.
type Route int

const (
	RouteClinicRegistration Route = iota
	RouteDashboard
)

// Path returns the route's page path.
func (r Route) Path() string {
	if r == RouteDashboard {
		return "/dashboard"
	}
	return "/clinic_registration"
}

// CenterDirectory is the slice of the centers repository resolution needs.
type CenterDirectory interface {
	ListByUser(ctx context.Context, userID string) ([]models.Center, error)
	Create(ctx context.Context, draft models.CenterDraft) (models.Center, error)
}

// Resolution is the settled outcome for one login.
type Resolution struct {
	State   State
	Centers []models.Center
}

// Route maps the state to a destination. Zero centers means registration;
// one or more means dashboard. Entry count beyond zero/non-zero is
// irrelevant.
func (r Resolution) Route() Route {
	if r.State == HasClinic {
		return RouteDashboard
	}
	return RouteClinicRegistration
}

// Resolver runs the once-per-login clinic lookup.
type Resolver struct {
	centers CenterDirectory
}

func NewResolver(centers CenterDirectory) *Resolver {
	return &Resolver{centers: centers}
}

// Resolve queries the account's centers and settles the state. A failed
// query is returned as an error: the caller surfaces a login failure
// instead of routing on a guess.
func (r *Resolver) Resolve(ctx context.Context, userID string) (Resolution, error) {
	if userID == "" {
		return Resolution{}, fmt.Errorf("clinic resolution requires a user id")
	}

	centers, err := r.centers.ListByUser(ctx, userID)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolving clinic for user %s: %w", userID, err)
	}

	state := NoClinic
	if len(centers) > 0 {
		state = HasClinic
	}
	log.Info().
		Str("user_id", userID).
		Str("state", state.String()).
		Int("centers", len(centers)).
		Msg("Clinic resolved")

	return Resolution{State: state, Centers: centers}, nil
}

// RegisterClinic submits the clinic-registration form for accounts that
// resolved to NoClinic.
func (r *Resolver) RegisterClinic(ctx context.Context, draft models.CenterDraft) (models.Center, error) {
	if draft.Name == "" {
		return models.Center{}, fmt.Errorf("clinic name is required")
	}
	return r.centers.Create(ctx, draft)
}
