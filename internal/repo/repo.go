// internal/repo/repo.go

// Package repo holds the thin typed repositories over the authenticated
// request client. List calls never mutate server state; mutations rely on
// the client to attach the credential and on the server to enforce it;
// no token is pre-validated locally.
package repo

import (
	"errors"

	"github.com/halicare/clinicdash/internal/httpclient"
)

// ErrMissingID marks update/delete attempts without a concrete resource id.
// The repository refuses these locally rather than hitting the collection
// endpoint by accident.
var ErrMissingID = errors.New("resource id is required")

// Repositories bundles one repository per entity, all sharing a client.
type Repositories struct {
	Users        *Users
	Appointments *Appointments
	Services     *Services
	Centers      *Centers
}

func New(client *httpclient.Client) *Repositories {
	return &Repositories{
		Users:        &Users{client: client},
		Appointments: &Appointments{client: client},
		Services:     &Services{client: client},
		Centers:      &Centers{client: client},
	}
}
