// Package models defines the client-side view models of the Billio API.
package models

import "strings"

// User is the identity attached to a session. ID and Email are required;
// Name is optional.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// DisplayName returns Name, falling back to Email.
func (u User) DisplayName() string {
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	return u.Email
}
