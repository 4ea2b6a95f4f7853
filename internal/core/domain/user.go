package domain

import "strings"

// RoleAdmin is the only elevated role. A user without a role has no privileges.
const RoleAdmin = "admin"

// User models a registered customer of the restaurant.
type User struct {
	ID           string `json:"_id,omitempty"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email"`
	Photo        string `json:"photo,omitempty"`
	Role         string `json:"role,omitempty"`
	PasswordHash string `json:"-"`
}

// IsAdmin reports whether the user holds the admin role. A nil user is never admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Identity is the claim carried inside a bearer token.
type Identity struct {
	Email string `json:"email"`
}

// BlankEmail reports whether email is empty or only whitespace. Non-blank
// emails are stored, signed and compared exactly as submitted.
func BlankEmail(email string) bool {
	return strings.TrimSpace(email) == ""
}
