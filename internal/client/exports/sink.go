// Package exports stores downloaded grade exports. A Sink receives the file
// name and bytes and reports where the export ended up.
package exports

import "context"

// Sink stores a finished export and returns its location (a path or URI).
type Sink interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}
