// Package subscriptions binds recurring billing records to the repository
// core. Billing cycles and proration are computed remotely.
package subscriptions

import (
	"context"

	"github.com/clubify/checkout-go/repository"
)

const (
	Endpoint = "/subscriptions"
	Resource = "subscription"
)

// Repository exposes subscription reads and writes over the shared core.
type Repository struct {
	core *repository.Core
}

func NewRepository(core *repository.Core) *Repository {
	return &Repository{core: core}
}

func (r *Repository) FindByID(ctx context.Context, id string) (repository.Entity, error) {
	return r.core.FindByID(ctx, id)
}

// ListActiveByCustomer returns a customer's active subscriptions, cached.
func (r *Repository) ListActiveByCustomer(ctx context.Context, customerID string) ([]repository.Entity, error) {
	params := map[string]any{"customer_id": customerID, "status": "active"}
	key := r.core.QueryKey("list_active", params)
	return repository.CachedOrExecute(ctx, r.core, key, 0, func(ctx context.Context) ([]repository.Entity, error) {
		return r.core.ListPath(ctx, "list_active", "", params)
	})
}

func (r *Repository) Create(ctx context.Context, data repository.Entity) (repository.Entity, error) {
	return r.core.Create(ctx, data)
}

func (r *Repository) Update(ctx context.Context, id string, data repository.Entity) (repository.Entity, error) {
	return r.core.Update(ctx, id, data)
}

// Cancel transitions the subscription to canceled. The remote service decides
// the effective end of the current billing period.
func (r *Repository) Cancel(ctx context.Context, id string) (repository.Entity, error) {
	return r.core.Update(ctx, id, repository.Entity{"status": "canceled"})
}
