// Package delivery defines the inbound transport abstraction the
// application wires its servers behind.
package delivery

import "context"

// Delivery is a long-running inbound adapter, such as an HTTP server.
type Delivery interface {
	// Serve blocks until the adapter stops or the context is cancelled.
	Serve(ctx context.Context) error
}
