package apiclient

import (
	"context"
	"sync"
)

type refreshResult struct {
	token string
	err   error
}

// refreshCoordinator collapses concurrent refresh attempts into one network
// call. The first caller performs the refresh; callers that arrive while it
// is in flight queue up and receive the same result, in arrival order.
type refreshCoordinator struct {
	mu         sync.Mutex
	refreshing bool
	waiters    []chan refreshResult
}

// Do returns the token produced by fn, running fn at most once per refresh
// round no matter how many goroutines call Do concurrently.
func (c *refreshCoordinator) Do(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	c.mu.Lock()
	if c.refreshing {
		waiter := make(chan refreshResult, 1)
		c.waiters = append(c.waiters, waiter)
		c.mu.Unlock()

		select {
		case result := <-waiter:
			return result.token, result.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	c.refreshing = true
	c.mu.Unlock()

	token, err := fn(ctx)

	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, waiter := range waiters {
		waiter <- refreshResult{token: token, err: err}
	}

	return token, err
}
