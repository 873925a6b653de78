// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Credential errors.
	ErrNoAccessToken    = errors.New("no access token")
	ErrEmptyCredentials = errors.New("username and password are required")

	// Validation errors.
	ErrInvalidExportFormat = errors.New("invalid export format")
)
