// internal/repo/users.go
package repo

import (
	"context"
	"fmt"

	"github.com/halicare/clinicdash/internal/httpclient"
	"github.com/halicare/clinicdash/internal/models"
)

// Users reads the account collection. It is a read-only projection from the
// dashboard's perspective.
type Users struct {
	client *httpclient.Client
}

func NewUsers(client *httpclient.Client) *Users {
	return &Users{client: client}
}

func (r *Users) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.client.GetJSON(ctx, "/api/users", nil, &users); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}
