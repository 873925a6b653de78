// Package tokenstore persists the client's credential slots: the access
// token, the refresh token and the cached user profile. The three slots are
// always cleared together.
package tokenstore

import (
	"context"
)

// Store is safe for concurrent use. Missing slots read as the empty value
// with a nil error.
type Store interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)

	// SetTokens writes both tokens atomically. An empty refresh token keeps
	// the one already stored.
	SetTokens(ctx context.Context, access, refresh string) error

	User(ctx context.Context) ([]byte, error)
	SetUser(ctx context.Context, user []byte) error

	// Clear wipes the access token, the refresh token and the user.
	Clear(ctx context.Context) error
}
