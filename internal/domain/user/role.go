package user

import "fmt"

// Role is the closed set of account roles. It is immutable after creation
// and gates every authorization check in the system.
type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleProvider Role = "PROVIDER"
)

// IsValid returns true if the role is a recognized account role.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleProvider:
		return true
	}
	return false
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// ParseRole converts a string to a Role, returning an error if invalid.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}
