// Package model defines the entities stored by the application.
//
// Every entity embeds store.Meta, which contributes the id and the
// created_on/modified_on timestamps and lets the generic store manage the
// record lifecycle.
package model

import "github.com/tirgei/questioner/internal/store"

// User represents a registered account.
//
// PasswordHash holds the bcrypt digest, never the plaintext. The json:"-"
// tag keeps it out of every response body: a user record can be serialized
// anywhere without leaking the credential.
type User struct {
	store.Meta
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	Othername    string `json:"othername,omitempty"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	PhoneNumber  string `json:"phonenumber"`
}
