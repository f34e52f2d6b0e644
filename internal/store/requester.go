// Package store holds the HTTP-backed repositories for each backend
// collection.
package store

import (
	"context"
	"fmt"
)

// Requester sends an authenticated JSON request. *api.Client satisfies it.
type Requester interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

func itemPath(collection string, id int) string {
	return fmt.Sprintf("%s/%d", collection, id)
}
