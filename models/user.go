package models

// User is the identity attached to a session after login.
type User struct {
	Email string `json:"email"`
}
