package enums

import (
	"fmt"
	"strings"
)

// Role is the account role the backend puts on the auth response.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

var validRoles = []Role{
	RoleCustomer,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role. The backend is not consistent about casing.
func ParseRole(value string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.TrimPrefix(normalized, "ROLE_")
	for _, candidate := range validRoles {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

// Allows reports whether a holder of r may enter a surface that requires required.
func (r Role) Allows(required Role) bool {
	if required == RoleCustomer {
		return r.IsValid()
	}
	return r == required
}
