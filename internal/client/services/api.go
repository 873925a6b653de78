// Package services contains application services for the examiner client:
// authentication, the exam endpoints, the admin area and grade exports.
// They sit on top of apiclient and never deal with token refresh themselves.
package services

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/practicum/internal/client/apiclient"
)

// API is the part of *apiclient.Client the services depend on.
type API interface {
	Do(ctx context.Context, req *apiclient.Request) (*apiclient.Response, error)
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Patch(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string) error
	Download(ctx context.Context, path string, query url.Values) (*apiclient.Blob, error)
	SetDefaultAuthorization(token string)
}

var _ API = (*apiclient.Client)(nil)
