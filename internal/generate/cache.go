// AngelaMos | 2026
// cache.go

package generate

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ClientCache holds the one process-wide provider handle. The client
// is built lazily on first use and dropped on a timer so long-lived
// processes pick up rotated credentials without a restart.
type ClientCache struct {
	mu      sync.Mutex
	client  Provider
	factory func() (Provider, error)
	logger  *slog.Logger
}

func NewClientCache(
	factory func() (Provider, error),
	logger *slog.Logger,
) *ClientCache {
	return &ClientCache{
		factory: factory,
		logger:  logger,
	}
}

func (c *ClientCache) Get() (Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	client, err := c.factory()
	if err != nil {
		return nil, err
	}

	c.client = client
	return client, nil
}

func (c *ClientCache) Invalidate() {
	c.mu.Lock()
	c.client = nil
	c.mu.Unlock()
}

// Run invalidates the cached client every interval until the context
// is cancelled. Intended to run as a background goroutine for the
// life of the process.
func (c *ClientCache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Invalidate()
			c.logger.Debug("provider client cache invalidated",
				slog.Duration("interval", interval),
			)
		case <-ctx.Done():
			return
		}
	}
}
