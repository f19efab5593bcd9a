package domain

import (
	"fmt"
	"strings"
)

// Role gates which commands are available and which mutations the
// backend will accept.
type Role string

const (
	RoleAdmin           Role = "admin"
	RolePenanggungJawab Role = "penanggung_jawab"
	RoleViewer          Role = "viewer"
)

// Roles returns all valid roles.
func Roles() []Role {
	return []Role{RoleAdmin, RolePenanggungJawab, RoleViewer}
}

// NormalizeRole folds the backend's enum serialization quirks into the
// canonical lowercase form. Some responses arrive as "UserRole.ADMIN".
func NormalizeRole(s string) Role {
	s = strings.TrimPrefix(s, "UserRole.")
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	r := NormalizeRole(s)
	for _, valid := range Roles() {
		if r == valid {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid role %q (valid: admin, penanggung_jawab, viewer)", s)
}

// CanManageUsers reports whether the role may reach user management at
// all. Checked before any network call is issued.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// CanMutateAssets reports whether the role may create, update or
// delete assets and locations.
func (r Role) CanMutateAssets() bool {
	return r == RoleAdmin || r == RolePenanggungJawab
}

// User is an account identity. The password is write-only and never
// round-trips on reads.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// UserInput carries the writable account fields.
type UserInput struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
}

// Validate mirrors the backend schema rules. requirePassword is true
// on create; updates may omit the password to leave it unchanged.
func (in UserInput) Validate(requirePassword bool) error {
	if l := len(strings.TrimSpace(in.Username)); l < 3 || l > 50 {
		return fmt.Errorf("username must be 3-50 characters")
	}
	if requirePassword && in.Password == "" {
		return fmt.Errorf("password is required")
	}
	if in.Password != "" && len(in.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if _, err := ParseRole(string(in.Role)); err != nil {
		return err
	}
	return nil
}
