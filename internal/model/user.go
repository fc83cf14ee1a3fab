// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered staff account.
//
// Identity is a plain username/password pair checked over HTTP Basic. TLS is
// assumed in deployment; the upside is a wire protocol that stays trivially
// scriptable (curl -u admin:secret ...).
//
// WHY PasswordHash `json:"-"`?
// The dash tag tells encoding/json to NEVER serialize this field. Even if a
// handler accidentally writes a full User to a response, the bcrypt hash stays
// server-side. Defence at the type level beats remembering to strip it per handler.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // "ADMIN" — the only role issued today
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Credentials is the register/login request payload.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=40"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}
