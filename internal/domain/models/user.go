// internal/domain/models/user.go
package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/slatetrack/slatetrack/internal/app/system/normalize"
)

// User is an account that can sign in and act on projects and work items.
//
// Credentials are stored and compared in plaintext. This application is a
// single-user-machine tracker with no server authority; real credential
// security is explicitly out of scope.
type User struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Name         string `json:"name"` // derived display name
	Email        string `json:"email"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	Position     string `json:"position"`
	ProfileImage string `json:"profileImage"`
	Role         Role   `json:"role"`
}

// RecordID implements records.Record.
func (u User) RecordID() string { return u.ID }

// NewUserID returns a fresh opaque user id.
func NewUserID() string {
	return fmt.Sprintf("u_%s", strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// buildName joins first and last name, tolerating an empty last name.
func buildName(firstName, lastName string) string {
	return strings.TrimSpace(firstName + " " + lastName)
}

// NormalizeUser coerces a stored user record to the canonical shape.
// It accepts the legacy shape where only a combined display name was
// persisted, splitting it into first/last. Normalizing an already
// canonical record is a no-op.
func NormalizeUser(u User) User {
	firstName := normalize.Name(u.FirstName)
	lastName := normalize.Name(u.LastName)
	if firstName == "" && u.Name != "" {
		parts := strings.Fields(u.Name)
		if len(parts) > 0 {
			firstName = parts[0]
			if lastName == "" {
				lastName = strings.Join(parts[1:], " ")
			}
		}
	}
	if firstName == "" {
		firstName = "User"
	}

	return User{
		ID:           u.ID,
		FirstName:    firstName,
		LastName:     lastName,
		Name:         buildName(firstName, lastName),
		Email:        normalize.Email(u.Email),
		Username:     normalize.Username(u.Username),
		Password:     u.Password,
		Position:     NormalizePosition(u.Position),
		ProfileImage: u.ProfileImage,
		Role:         NormalizeRole(u.Role),
	}
}
