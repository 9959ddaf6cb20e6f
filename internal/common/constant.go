// Package common contains constants shared by the Billio client packages.
package common

// Header names set on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerScheme            = "Bearer"
)

// LoginLocation is the login surface of the client. Navigating here means the
// session has ended.
const LoginLocation = "/login"
