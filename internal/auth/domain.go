// Package auth implements password authentication, session registration and
// the password reset flow.
package auth

import "time"

// User is an account with its profile and company binding. A user belongs to
// exactly one company; the session carries that scope after login.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	CompanyID    string
	IsActive     bool
	CreatedAt    time.Time
}

// Profile is the client-facing account shape.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	CompanyID string `json:"companyId"`
}

// NewProfile maps a user for display.
func NewProfile(u User) Profile {
	return Profile{ID: u.ID, Email: u.Email, FullName: u.FullName, CompanyID: u.CompanyID}
}
