// Package notifications binds user-facing notification records to the
// repository core. Unread listings are cached briefly since they change often.
package notifications

import (
	"context"
	"time"

	"github.com/clubify/checkout-go/repository"
)

const (
	Endpoint = "/notifications"
	Resource = "notification"
)

// unreadTTL keeps unread listings fresher than the default cache TTL.
const unreadTTL = 30 * time.Second

// Repository exposes notification reads and writes over the shared core.
type Repository struct {
	core *repository.Core
}

func NewRepository(core *repository.Core) *Repository {
	return &Repository{core: core}
}

func (r *Repository) FindByID(ctx context.Context, id string) (repository.Entity, error) {
	return r.core.FindByID(ctx, id)
}

// ListUnread returns a user's unread notifications with a short TTL.
func (r *Repository) ListUnread(ctx context.Context, userID string) ([]repository.Entity, error) {
	params := map[string]any{"user_id": userID, "read": false}
	key := r.core.QueryKey("list_unread", params)
	return repository.CachedOrExecute(ctx, r.core, key, unreadTTL, func(ctx context.Context) ([]repository.Entity, error) {
		return r.core.ListPath(ctx, "list_unread", "", params)
	})
}

func (r *Repository) Create(ctx context.Context, data repository.Entity) (repository.Entity, error) {
	return r.core.Create(ctx, data)
}

// MarkRead flags one notification as read, clearing its cached reads.
func (r *Repository) MarkRead(ctx context.Context, id string) (repository.Entity, error) {
	return r.core.Update(ctx, id, repository.Entity{"read": true})
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	return r.core.Delete(ctx, id)
}
