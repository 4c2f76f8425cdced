// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is a registered user. PasswordHash and Tokens never leave the
// server: both are excluded from JSON.
type Account struct {
	ID           string         `json:"_id"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Tokens       []AccountToken `json:"-"`
	CreatedAt    time.Time      `json:"-"`
}

// AccountToken is one issued bearer token. An account may hold several at
// once, one per session.
type AccountToken struct {
	Access string
	Token  string
}
