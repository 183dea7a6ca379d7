package domain

import (
	"fmt"
	"strings"
)

// Role is a user's platform role.
type Role string

const (
	RoleMaster       Role = "MASTER"
	RoleAdmin        Role = "ADMIN"
	RoleManager      Role = "MANAGER"
	RoleUser         Role = "USER"
	RoleReceptionist Role = "RECEPTIONIST"
)

// AllRoles lists every role in descending order of privilege.
var AllRoles = []Role{RoleMaster, RoleAdmin, RoleManager, RoleUser, RoleReceptionist}

// ParseRole converts a case-insensitive string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllRoles {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User represents a user of the application in the domain.
type User struct {
	UserID       string  `json:"userID" db:"user_id"`
	Email        string  `json:"email" db:"email"`
	PasswordHash string  `json:"-" db:"password_hash"`
	FullName     string  `json:"fullName" db:"full_name"`
	Role         Role    `json:"role" db:"role"`
	WorkspaceID  *string `json:"workspaceID,omitempty" db:"workspace_id"` // nil for MASTER users
	IsActive     bool    `json:"isActive" db:"is_active"`
	AuditFields
}

// Session is the authenticated caller, validated once at the auth boundary.
// Role always comes from storage, never from the token.
type Session struct {
	UserID      string
	Role        Role
	WorkspaceID *string
}

// IsMaster reports whether the session belongs to a platform owner.
func (s Session) IsMaster() bool {
	return s.Role == RoleMaster
}

// Validate checks the required fields of a session.
func (s Session) Validate() error {
	if s.UserID == "" {
		return fmt.Errorf("session user id is empty")
	}
	if _, err := ParseRole(string(s.Role)); err != nil {
		return fmt.Errorf("session role: %w", err)
	}
	return nil
}

// SessionFromUser builds the typed session for a stored user.
func SessionFromUser(u User) Session {
	return Session{UserID: u.UserID, Role: u.Role, WorkspaceID: u.WorkspaceID}
}
