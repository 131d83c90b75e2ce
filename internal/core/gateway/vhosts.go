package gateway

import (
	"context"

	"github.com/mqforge/mqforge/internal/core/models"
)

// ListVhosts returns all virtual hosts. The result is cached: the first
// caller triggers the network fetch, concurrent callers during an in-flight
// fetch share the same pending result, and the cache persists until a
// credential change invalidates it.
func (c *Client) ListVhosts(ctx context.Context) ([]models.VHostDTO, error) {
	c.mu.RLock()
	cached := c.vhostCache
	c.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	result, err, _ := c.group.Do("vhosts", func() (any, error) {
		c.mu.RLock()
		gen := c.credGen
		c.mu.RUnlock()

		var vhosts []models.VHostDTO
		if err := c.do(ctx, "GET", "/api/vhosts", nil, &vhosts); err != nil {
			return nil, err
		}
		c.mu.Lock()
		// A credential change mid-fetch invalidated this result already;
		// caching it would pin a list fetched with the replaced credentials.
		if c.credGen == gen {
			c.vhostCache = vhosts
		}
		c.mu.Unlock()
		return vhosts, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.VHostDTO), nil
}
