// Package delivery defines the contract every inbound transport must satisfy.
package delivery

import "context"

// Delivery is a server that accepts inbound traffic until its context ends.
// Implementations register with fx under the "deliveries" group and are
// started together by the application entrypoint.
type Delivery interface {
	Serve(ctx context.Context) error
}
