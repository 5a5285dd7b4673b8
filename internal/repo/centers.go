// internal/repo/centers.go
package repo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/halicare/clinicdash/internal/httpclient"
	"github.com/halicare/clinicdash/internal/models"
)

// Centers reads and registers clinic records. The post-login routing
// decision hangs off ListByUser.
type Centers struct {
	client *httpclient.Client
}

func NewCenters(client *httpclient.Client) *Centers {
	return &Centers{client: client}
}

func (r *Centers) ListByUser(ctx context.Context, userID string) ([]models.Center, error) {
	query := url.Values{"userId": {userID}}
	var payload struct {
		Centers []models.Center `json:"centers"`
	}
	opts := &httpclient.RequestOptions{Query: query}
	if err := r.client.GetJSON(ctx, "/api/centers", opts, &payload); err != nil {
		return nil, fmt.Errorf("listing centers for user %s: %w", userID, err)
	}
	return payload.Centers, nil
}

func (r *Centers) Create(ctx context.Context, draft models.CenterDraft) (models.Center, error) {
	var created models.Center
	if err := r.client.PostJSON(ctx, "/api/centers", draft, &created); err != nil {
		return models.Center{}, fmt.Errorf("registering clinic: %w", err)
	}
	return created, nil
}
