// internal/domain/models/roles.go
package models

// Role is a user's global role. Authorization is coarse: every permission
// check consults the global role only, never per-project membership.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleMember     Role = "MEMBER"
)

// AllRoles lists every assignable role.
var AllRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleMember}

// IsValidRole checks whether value names a known role.
func IsValidRole(value Role) bool {
	switch value {
	case RoleSuperAdmin, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// NormalizeRole returns value if it is a known role, RoleMember otherwise.
func NormalizeRole(value Role) Role {
	if IsValidRole(value) {
		return value
	}
	return RoleMember
}
