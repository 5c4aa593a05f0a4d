// Package users binds the user resource to the repository core and layers
// DTO validation on top.
package users

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/clubify/checkout-go/apierror"
	"github.com/clubify/checkout-go/repository"
)

const (
	Endpoint = "/users"
	Resource = "user"
)

// User is the domain DTO for registration and profile updates.
type User struct {
	ID     string `json:"id,omitempty"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
}

// Validate enforces local input rules before any network call is attempted.
func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&u.Role, validation.In("", "owner", "admin", "member")),
	)
}

// Repository exposes user reads and writes over the shared core.
type Repository struct {
	core *repository.Core
}

// NewRepository wraps a core bound to the user endpoint.
func NewRepository(core *repository.Core) *Repository {
	return &Repository{core: core}
}

// FindByID returns the user or nil when the remote reports 404.
func (r *Repository) FindByID(ctx context.Context, id string) (repository.Entity, error) {
	return r.core.FindByID(ctx, id)
}

// FindByEmail is a cached lookup; identical emails share one cache slot.
func (r *Repository) FindByEmail(ctx context.Context, email string) (repository.Entity, error) {
	params := map[string]any{"email": email}
	key := r.core.QueryKey("find_by_email", params)
	return repository.CachedOrExecute(ctx, r.core, key, CacheTTL, func(ctx context.Context) (repository.Entity, error) {
		return r.core.GetPath(ctx, "find_by_email", "/search", params)
	})
}

// List returns users matching the query.
func (r *Repository) List(ctx context.Context, query map[string]any) ([]repository.Entity, error) {
	return r.core.List(ctx, query)
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

// Service orchestrates validation and repository calls for user management.
type Service struct {
	repo *Repository
}

// NewService creates the user service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Register validates the DTO locally and creates the user remotely. A
// validation failure surfaces before any network call.
func (s *Service) Register(ctx context.Context, u User) (repository.Entity, error) {
	if err := u.Validate(); err != nil {
		return nil, apierror.NewValidation(Resource, err)
	}

	data, err := repository.ToEntity(u)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, data)
}

// UpdateProfile applies a partial profile update.
func (s *Service) UpdateProfile(ctx context.Context, id string, updates repository.Entity) (repository.Entity, error) {
	return s.repo.Update(ctx, id, updates)
}

// Deactivate marks the user inactive rather than deleting the record.
func (s *Service) Deactivate(ctx context.Context, id string) (repository.Entity, error) {
	return s.repo.Update(ctx, id, repository.Entity{"status": "inactive"})
}

// CacheTTL bounds how long cached user lookups stay fresh.
const CacheTTL = 10 * time.Minute
