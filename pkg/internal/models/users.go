package models

import (
	"fmt"
	"time"
)

type UserRole = string

const (
	RoleStudent   = UserRole("student")
	RoleProfessor = UserRole("professor")
)

// User is the identity returned by GET /me. Email is set for
// professors, Usn for students; either may be absent.
type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email *string  `json:"email,omitempty"`
	Usn   *string  `json:"usn,omitempty"`
	Role  UserRole `json:"role"`
}

func (u User) DisplayText() string {
	if u.Email != nil {
		return fmt.Sprintf("%s <%s>", u.Name, *u.Email)
	}
	if u.Usn != nil {
		return fmt.Sprintf("%s (%s)", u.Name, *u.Usn)
	}
	return u.Name
}

type Token struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}
