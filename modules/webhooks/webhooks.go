// Package webhooks binds webhook subscription management to the repository
// core. Delivery and retry of webhook calls happen remotely; the SDK only
// manages subscription records.
package webhooks

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/clubify/checkout-go/apierror"
	"github.com/clubify/checkout-go/repository"
)

const (
	Endpoint = "/webhooks"
	Resource = "webhook"
)

// Webhook is a subscription to remote platform events.
type Webhook struct {
	ID     string   `json:"id,omitempty"`
	URL    string   `json:"url"`
	Events []string `json:"events"`
	Secret string   `json:"secret,omitempty"`
	Active bool     `json:"active"`
}

func (w Webhook) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.URL, validation.Required, is.URL),
		validation.Field(&w.Events, validation.Required, validation.Length(1, 50)),
	)
}

// Repository exposes webhook subscription reads and writes.
type Repository struct {
	core *repository.Core
}

func NewRepository(core *repository.Core) *Repository {
	return &Repository{core: core}
}

func (r *Repository) FindByID(ctx context.Context, id string) (repository.Entity, error) {
	return r.core.FindByID(ctx, id)
}

// ListByEvent returns subscriptions listening to one event name, cached.
func (r *Repository) ListByEvent(ctx context.Context, event string) ([]repository.Entity, error) {
	params := map[string]any{"event": event}
	key := r.core.QueryKey("list_by_event", params)
	return repository.CachedOrExecute(ctx, r.core, key, 0, func(ctx context.Context) ([]repository.Entity, error) {
		return r.core.ListPath(ctx, "list_by_event", "", params)
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

// Service validates and registers webhook subscriptions.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Register validates the subscription and creates it remotely.
func (s *Service) Register(ctx context.Context, w Webhook) (repository.Entity, error) {
	if err := w.Validate(); err != nil {
		return nil, apierror.NewValidation(Resource, err)
	}

	data, err := repository.ToEntity(w)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, data)
}

// Disable turns a subscription off without deleting it.
func (s *Service) Disable(ctx context.Context, id string) (repository.Entity, error) {
	return s.repo.Update(ctx, id, repository.Entity{"active": false})
}
