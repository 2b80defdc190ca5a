// Package models defines the documents the server persists.
package models

// Account is a document of the users collection. The password hash is
// stored but never serialized to clients.
type Account struct {
	ID           string `json:"_id,omitempty"`
	UserName     string `json:"user"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
}
