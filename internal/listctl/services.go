// internal/listctl/services.go
package listctl

import (
	"context"

	"github.com/halicare/clinicdash/internal/models"
)

// ServiceMutator is the slice of the services repository the page needs
// for CRUD.
type ServiceMutator interface {
	Create(ctx context.Context, draft models.ServiceDraft) (models.Service, error)
	Update(ctx context.Context, id string, patch models.ServiceDraft) (models.Service, error)
	Delete(ctx context.Context, id string) error
}

// ServiceList is the services page controller. Mutations are confirmed
// only: local state changes after the repository call succeeds, never
// optimistically ahead of it. A failed mutation leaves the list untouched
// and returns the error for the caller to surface.
type ServiceList struct {
	*Controller[models.Service]
	repo ServiceMutator
}

func NewServiceList(repo ServiceMutator, pageSize int) *ServiceList {
	return &ServiceList{
		Controller: New(Config[models.Service]{
			PageSize:     pageSize,
			SearchText:   func(svc models.Service) string { return svc.Name },
			EmptyMessage: "No match found",
		}),
		repo: repo,
	}
}

// Create submits the draft and appends the server-confirmed record, with
// whatever id the server assigned.
func (l *ServiceList) Create(ctx context.Context, draft models.ServiceDraft) (models.Service, error) {
	created, err := l.repo.Create(ctx, draft)
	if err != nil {
		return models.Service{}, err
	}
	l.append(created)
	return created, nil
}

// Update submits the patch and replaces the matching record by id once the
// server confirms.
func (l *ServiceList) Update(ctx context.Context, id string, patch models.ServiceDraft) (models.Service, error) {
	updated, err := l.repo.Update(ctx, id, patch)
	if err != nil {
		return models.Service{}, err
	}
	if updated.ID == "" {
		updated.ID = id
	}
	l.replace(func(svc models.Service) bool { return svc.ID == id }, updated)
	return updated, nil
}

// Delete removes the matching record by id once the server confirms.
func (l *ServiceList) Delete(ctx context.Context, id string) error {
	if err := l.repo.Delete(ctx, id); err != nil {
		return err
	}
	l.remove(func(svc models.Service) bool { return svc.ID == id })
	return nil
}
