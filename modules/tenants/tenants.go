// Package tenants binds the tenant resource to the repository core.
//
// The remote tenant endpoints are the ones with the most envelope drift:
// responses arrive wrapped under "data", under "tenant", or at the top level
// depending on the route, so the repository configures an unwrap priority
// list instead of branching per method.
package tenants

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/clubify/checkout-go/apierror"
	"github.com/clubify/checkout-go/repository"
)

const (
	Endpoint = "/tenants"
	Resource = "tenant"
)

// UnwrapPriority is the envelope key order observed on tenant routes.
var UnwrapPriority = []string{"data", "tenant"}

// Tenant is the domain DTO for tenant provisioning.
type Tenant struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Plan   string `json:"plan,omitempty"`
}

func (t Tenant) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&t.Domain, validation.Required, is.Host),
	)
}

// Repository exposes tenant reads and writes over the shared core.
type Repository struct {
	core *repository.Core
}

func NewRepository(core *repository.Core) *Repository {
	return &Repository{core: core}
}

func (r *Repository) FindByID(ctx context.Context, id string) (repository.Entity, error) {
	return r.core.FindByID(ctx, id)
}

// FindByDomain resolves a tenant from its custom domain, cached under a key
// derived from the domain so repeated resolutions skip the network.
func (r *Repository) FindByDomain(ctx context.Context, domain string) (repository.Entity, error) {
	params := map[string]any{"domain": domain}
	key := r.core.QueryKey("find_by_domain", params)
	return repository.CachedOrExecute(ctx, r.core, key, 0, func(ctx context.Context) (repository.Entity, error) {
		return r.core.GetPath(ctx, "find_by_domain", "/by-domain", params)
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

// Service orchestrates tenant provisioning.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Provision validates and creates a tenant.
func (s *Service) Provision(ctx context.Context, t Tenant) (repository.Entity, error) {
	if err := t.Validate(); err != nil {
		return nil, apierror.NewValidation(Resource, err)
	}

	data, err := repository.ToEntity(t)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, data)
}

// Rename updates the tenant's display name.
func (s *Service) Rename(ctx context.Context, id, name string) (repository.Entity, error) {
	return s.repo.Update(ctx, id, repository.Entity{"name": name})
}
