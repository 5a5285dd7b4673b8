// internal/repo/services.go
package repo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/halicare/clinicdash/internal/httpclient"
	"github.com/halicare/clinicdash/internal/models"
)

// Services is the one repository with mutations. The server assigns every
// service id; Create returns the server document rather than synthesizing
// one locally.
type Services struct {
	client *httpclient.Client
}

func NewServices(client *httpclient.Client) *Services {
	return &Services{client: client}
}

func (r *Services) List(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.client.GetJSON(ctx, "/api/services", nil, &services); err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	return services, nil
}

func (r *Services) Create(ctx context.Context, draft models.ServiceDraft) (models.Service, error) {
	var created models.Service
	if err := r.client.PostJSON(ctx, "/api/services", draft, &created); err != nil {
		return models.Service{}, fmt.Errorf("creating service: %w", err)
	}
	return created, nil
}

func (r *Services) Update(ctx context.Context, id string, patch models.ServiceDraft) (models.Service, error) {
	if id == "" {
		return models.Service{}, fmt.Errorf("updating service: %w", ErrMissingID)
	}
	var updated models.Service
	path := "/api/services/" + url.PathEscape(id)
	if err := r.client.PutJSON(ctx, path, patch, &updated); err != nil {
		return models.Service{}, fmt.Errorf("updating service %s: %w", id, err)
	}
	return updated, nil
}

func (r *Services) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("deleting service: %w", ErrMissingID)
	}
	path := "/api/services/" + url.PathEscape(id)
	if err := r.client.DeleteJSON(ctx, path, nil); err != nil {
		return fmt.Errorf("deleting service %s: %w", id, err)
	}
	return nil
}
