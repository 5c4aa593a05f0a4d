package repository

import (
	"context"
	"net/http"

	"github.com/clubify/checkout-go/transport"
)

// Create issues a POST with data as the body. On success it clears the list
// and count query caches (new rows change pagination and totals) and emits
// "{resource}.created". On failure nothing is emitted.
func (c *Core) Create(ctx context.Context, data Entity) (Entity, error) {
	return ExecuteWithMetrics(ctx, c, "create", func(ctx context.Context) (Entity, error) {
		resp, err := c.gw.Request(ctx, http.MethodPost, c.endpoint, &transport.RequestOptions{JSON: data})
		if err != nil {
			return nil, err
		}
		if !transport.IsSuccessful(resp) {
			return nil, c.remoteError("create", resp)
		}

		created, err := c.decodeEntity("create", resp)
		if err != nil {
			return nil, err
		}
		if created == nil {
			created = data
		}

		c.invalidateQueryCaches(ctx)
		c.emit(ctx, "created", map[string]any{
			c.resource + "_id": entityID(created),
			"data":             created,
		})
		return created, nil
	})
}

// Update issues a PUT against the entity. Every cache key that could
// reference the id is invalidated before the method returns, so a FindByID
// immediately after Update on the same process never observes the pre-update
// value. "{resource}.updated" is emitted after invalidation.
func (c *Core) Update(ctx context.Context, id string, data Entity) (Entity, error) {
	return ExecuteWithMetrics(ctx, c, "update", func(ctx context.Context) (Entity, error) {
		resp, err := c.gw.Request(ctx, http.MethodPut, c.endpoint+"/"+id, &transport.RequestOptions{JSON: data})
		if err != nil {
			return nil, err
		}
		if !transport.IsSuccessful(resp) {
			return nil, c.remoteError("update", resp)
		}

		updated, err := c.decodeEntity("update", resp)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			updated = data
		}

		c.InvalidateEntity(ctx, id)
		c.emit(ctx, "updated", map[string]any{
			c.resource + "_id": id,
			"updates":          data,
		})
		return updated, nil
	})
}

// Delete removes the entity. Deletion is idempotent: a 404 means the entity
// is already gone and still reports success, so calling Delete twice in a row
// returns true both times. The same invalidation set as Update is cleared
// either way.
func (c *Core) Delete(ctx context.Context, id string) (bool, error) {
	return ExecuteWithMetrics(ctx, c, "delete", func(ctx context.Context) (bool, error) {
		resp, err := c.gw.Request(ctx, http.MethodDelete, c.endpoint+"/"+id, nil)
		if err != nil {
			return false, err
		}
		if resp.StatusCode != http.StatusNotFound && !transport.IsSuccessful(resp) {
			return false, c.remoteError("delete", resp)
		}

		c.InvalidateEntity(ctx, id)
		c.emit(ctx, "deleted", map[string]any{c.resource + "_id": id})
		return true, nil
	})
}

// BulkCreate sends all items in one batched call. Partial failure inside the
// batch is the remote service's to report in the response body; the SDK
// treats a non-2xx as a single aggregate failure and attempts no per-item
// retry or rollback.
func (c *Core) BulkCreate(ctx context.Context, items []Entity) ([]Entity, error) {
	return ExecuteWithMetrics(ctx, c, "bulk_create", func(ctx context.Context) ([]Entity, error) {
		resp, err := c.gw.Request(ctx, http.MethodPost, c.endpoint+"/bulk", &transport.RequestOptions{
			JSON: map[string]any{"items": items},
		})
		if err != nil {
			return nil, err
		}
		if !transport.IsSuccessful(resp) {
			return nil, c.remoteError("bulk_create", resp)
		}

		created, err := c.decodeList("bulk_create", resp)
		if err != nil {
			return nil, err
		}

		c.invalidateQueryCaches(ctx)
		c.emit(ctx, "bulk_created", map[string]any{"count": len(items)})
		return created, nil
	})
}

// BulkUpdate sends all items in one batched call with the same aggregate
// failure semantics as BulkCreate. Entity caches are cleared for every item
// carrying an id.
func (c *Core) BulkUpdate(ctx context.Context, items []Entity) ([]Entity, error) {
	return ExecuteWithMetrics(ctx, c, "bulk_update", func(ctx context.Context) ([]Entity, error) {
		resp, err := c.gw.Request(ctx, http.MethodPut, c.endpoint+"/bulk", &transport.RequestOptions{
			JSON: map[string]any{"items": items},
		})
		if err != nil {
			return nil, err
		}
		if !transport.IsSuccessful(resp) {
			return nil, c.remoteError("bulk_update", resp)
		}

		updated, err := c.decodeList("bulk_update", resp)
		if err != nil {
			return nil, err
		}

		for _, item := range items {
			if id := entityID(item); id != "" {
				c.InvalidateEntity(ctx, id)
			}
		}
		c.invalidateQueryCaches(ctx)
		c.emit(ctx, "bulk_updated", map[string]any{"count": len(items)})
		return updated, nil
	})
}
