package repository

import (
	"context"
	"strings"

	"github.com/clubify/checkout-go/cache"
)

// InvalidateEntity clears every cache key that could reference the id:
// the direct key, composite keys with the id in any middle segment, and
// derived related/history query keys. Finder caches keyed by other parameters
// (an email or domain lookup, say) do not embed the id, so no pattern here can
// reach them; those entries are bounded by their TTL only.
func (c *Core) InvalidateEntity(ctx context.Context, id string) {
	c.store.Delete(ctx, c.EntityKey(id))

	for _, pattern := range c.invalidationPatterns(id) {
		c.store.DeletePattern(ctx, pattern)
	}
}

// invalidationPatterns returns the wildcard patterns cleared on a mutation of
// the given id.
func (c *Core) invalidationPatterns(id string) []string {
	return []string{
		strings.Join([]string{c.resource, "*", id}, cache.KeySeparator),
		strings.Join([]string{c.resource, "related", id, "*"}, cache.KeySeparator),
		strings.Join([]string{c.resource, "history", id, "*"}, cache.KeySeparator),
	}
}

// invalidateQueryCaches clears list and count query results, which any
// insertion can change.
func (c *Core) invalidateQueryCaches(ctx context.Context) {
	c.store.DeletePattern(ctx, strings.Join([]string{c.resource, "list", "*"}, cache.KeySeparator))
	c.store.DeletePattern(ctx, strings.Join([]string{c.resource, "count", "*"}, cache.KeySeparator))
}
