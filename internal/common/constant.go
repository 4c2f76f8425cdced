// Package common contains constants and sentinel errors shared by the
// TaskKeeper server and its CLI client.
package common

const (
	// AuthHeaderName is the HTTP header carrying the bearer token, both on
	// requests to protected routes and on register/login responses.
	AuthHeaderName = "x-auth"

	// ScopeAuth is the only token scope issued by the server.
	ScopeAuth = "auth"

	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 6
)
