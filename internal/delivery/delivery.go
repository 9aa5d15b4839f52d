// Package delivery defines the contract every transport front end (HTTP,
// workers) satisfies so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport server.
type Delivery interface {
	Serve(ctx context.Context) error
}
