// Package delivery defines the contract every transport front end implements.
package delivery

import "context"

// Delivery is a long-running transport server (HTTP today) started by main
// and stopped through lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
