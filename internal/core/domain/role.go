package domain

import (
	"fmt"
	"strings"
)

// Role is the privilege level asserted for an authenticated actor.
type Role string

const (
	RoleUser         Role = "USER"
	RoleStoreManager Role = "STORE_MANAGER"
	RoleAdmin        Role = "ADMIN"
)

// Roles lists every known role, lowest privilege first.
var Roles = []Role{RoleUser, RoleStoreManager, RoleAdmin}

// ParseRole converts a wire value into a Role. Anything outside the closed
// set is rejected with ErrUnknownRole instead of being defaulted.
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleStoreManager, RoleAdmin:
		return true
	}
	return false
}

// Rank orders roles by privilege (USER < STORE_MANAGER < ADMIN).
// Unknown roles rank below USER. Informational only: access checks use
// explicit allow-sets.
func (r Role) Rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleStoreManager:
		return 2
	case RoleAdmin:
		return 3
	}
	return 0
}

func (r Role) String() string { return string(r) }
