// Package apiclient is the authenticated HTTP client of the exam API.
//
// # Overview
//
// Every outbound request carries "Authorization: Bearer <access token>" when
// the credential store holds one. A 401 on a request that has not been
// replayed yet starts a refresh cycle:
//
//   - the first 401 seen while idle exchanges the refresh token at
//     POST /accounts/token/refresh/ and moves the client to refreshing;
//   - 401s seen while refreshing queue behind that exchange instead of
//     starting their own;
//   - on success the new access token is persisted and every queued request
//     is replayed with it, in the order it was queued;
//   - with no refresh token stored the cycle fails at once, without an
//     exchange;
//   - on failure every queued request fails with the same error, the
//     credentials are wiped once and the session-expired callback fires.
//
// Exactly one exchange runs per expiry episode. The exchange is bounded by
// the refresh timeout and is detached from the contexts of the requests
// waiting on it, so a caller giving up does not fail the others.
//
// # Errors
//
// Non-2xx responses are returned as *APIError. Terminal authentication
// failures are returned as *SessionError, which matches ErrSessionExpired
// with errors.Is and still exposes its cause (often an *APIError) to
// errors.As. Anything that is not a 401 passes through untouched.
package apiclient
