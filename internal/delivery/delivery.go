// Package delivery defines the contract every transport entrypoint
// (HTTP server, workers) implements so main can run them uniformly.
package delivery

import "context"

// Delivery is a long-running transport entrypoint.
type Delivery interface {
	// Serve blocks until the entrypoint stops or fails.
	Serve(ctx context.Context) error
}
