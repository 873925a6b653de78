// Package common contains shared constants and sentinel errors used across
// the examiner client.
package common

// Keys of the persisted credential slots. They are written and cleared
// together.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
	UserKey         = "user"
)

// AuthorizationHeader carries the bearer credential on outbound requests.
const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
	RequestIDHeader     = "X-Request-ID"
)

// Landing areas returned after login depending on the user's role.
const (
	RoleAdmin    = "admin"
	RoleExaminer = "examiner"

	AdminLanding    = "/admin"
	ExaminerLanding = "/programs"
)
