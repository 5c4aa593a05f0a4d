// Package cart binds shopping cart sessions to the repository core. Pricing
// conversion and totals are owned by the remote checkout service.
package cart

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/clubify/checkout-go/apierror"
	"github.com/clubify/checkout-go/repository"
)

const (
	Endpoint = "/carts"
	Resource = "cart"
)

// Item is one cart line.
type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (i Item) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ProductID, validation.Required),
		validation.Field(&i.Quantity, validation.Required, validation.Min(1), validation.Max(999)),
	)
}

// Repository exposes cart reads and writes over the shared core.
type Repository struct {
	core *repository.Core
}

func NewRepository(core *repository.Core) *Repository {
	return &Repository{core: core}
}

func (r *Repository) FindByID(ctx context.Context, id string) (repository.Entity, error) {
	return r.core.FindByID(ctx, id)
}

// FindBySession resolves the active cart for a storefront session, cached.
func (r *Repository) FindBySession(ctx context.Context, sessionID string) (repository.Entity, error) {
	params := map[string]any{"session_id": sessionID}
	key := r.core.QueryKey("find_by_session", params)
	return repository.CachedOrExecute(ctx, r.core, key, 0, func(ctx context.Context) (repository.Entity, error) {
		return r.core.GetPath(ctx, "find_by_session", "/by-session", params)
	})
}

func (r *Repository) Create(ctx context.Context, data repository.Entity) (repository.Entity, error) {
	return r.core.Create(ctx, data)
}

func (r *Repository) Update(ctx context.Context, id string, data repository.Entity) (repository.Entity, error) {
	return r.core.Update(ctx, id, data)
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	return r.core.Delete(ctx, id)
}

// Service validates cart mutations before they reach the remote API.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// AddItem validates the line and appends it to the cart via an update; the
// remote service merges duplicates and recomputes totals.
func (s *Service) AddItem(ctx context.Context, cartID string, item Item) (repository.Entity, error) {
	if err := item.Validate(); err != nil {
		return nil, apierror.NewValidation(Resource, err)
	}

	line, err := repository.ToEntity(item)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, cartID, repository.Entity{"add_items": []repository.Entity{line}})
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, cartID string) (repository.Entity, error) {
	return s.repo.Update(ctx, cartID, repository.Entity{"items": []repository.Entity{}})
}
