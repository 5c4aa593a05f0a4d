// Package orders binds the order resource to the repository core, including
// the batched import path used by storefront migrations.
package orders

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/clubify/checkout-go/apierror"
	"github.com/clubify/checkout-go/repository"
)

const (
	Endpoint = "/orders"
	Resource = "order"
)

// Order is the domain DTO for order placement. Pricing and totals are
// computed remotely; the SDK only validates shape.
type Order struct {
	ID         string  `json:"id,omitempty"`
	CustomerID string  `json:"customer_id"`
	CartID     string  `json:"cart_id,omitempty"`
	Currency   string  `json:"currency"`
	Total      float64 `json:"total,omitempty"`
	Status     string  `json:"status,omitempty"`
}

func (o Order) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.CustomerID, validation.Required),
		validation.Field(&o.Currency, validation.Required, validation.Length(3, 3)),
	)
}

// Repository exposes order reads and writes over the shared core.
type Repository struct {
	core *repository.Core
}

func NewRepository(core *repository.Core) *Repository {
	return &Repository{core: core}
}

func (r *Repository) FindByID(ctx context.Context, id string) (repository.Entity, error) {
	return r.core.FindByID(ctx, id)
}

// ListByCustomer returns a customer's orders, cached per customer + filters.
func (r *Repository) ListByCustomer(ctx context.Context, customerID string, filters map[string]any) ([]repository.Entity, error) {
	params := map[string]any{"customer_id": customerID}
	for k, v := range filters {
		params[k] = v
	}
	key := r.core.QueryKey("list_by_customer", params)
	return repository.CachedOrExecute(ctx, r.core, key, 0, func(ctx context.Context) ([]repository.Entity, error) {
		return r.core.ListPath(ctx, "list_by_customer", "", params)
	})
}

func (r *Repository) Create(ctx context.Context, data repository.Entity) (repository.Entity, error) {
	return r.core.Create(ctx, data)
}

func (r *Repository) Update(ctx context.Context, id string, data repository.Entity) (repository.Entity, error) {
	return r.core.Update(ctx, id, data)
}

// Import batches orders into one remote call. Partial failure is reported by
// the remote service inside the response; the SDK raises one aggregate error
// on a failed batch.
func (r *Repository) Import(ctx context.Context, items []repository.Entity) ([]repository.Entity, error) {
	return r.core.BulkCreate(ctx, items)
}

// Service orchestrates order placement.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Place validates and creates a single order.
func (s *Service) Place(ctx context.Context, o Order) (repository.Entity, error) {
	if err := o.Validate(); err != nil {
		return nil, apierror.NewValidation(Resource, err)
	}

	data, err := repository.ToEntity(o)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, data)
}

// ImportBatch validates every order locally, then imports the batch in one
// call. The first invalid order aborts before any network traffic.
func (s *Service) ImportBatch(ctx context.Context, orders []Order) ([]repository.Entity, error) {
	items := make([]repository.Entity, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, apierror.NewValidation(Resource, err)
		}
		data, err := repository.ToEntity(o)
		if err != nil {
			return nil, err
		}
		items = append(items, data)
	}
	return s.repo.Import(ctx, items)
}
