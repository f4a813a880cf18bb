// Package userpolicy provides authorization policies for user management.
//
// Authorization rules:
//   - Super admins can create, edit, and remove users and assign roles
//   - Admins and members cannot manage users at all
//
// Every predicate is pure and tolerates a nil actor (not signed in).
package userpolicy

import "github.com/slatetrack/slatetrack/internal/domain/models"

// CanManageUsers reports whether actor may create or edit users.
func CanManageUsers(actor *models.User) bool {
	return actor != nil && actor.Role == models.RoleSuperAdmin
}

// CanRemoveUser reports whether actor may delete users.
func CanRemoveUser(actor *models.User) bool {
	return actor != nil && actor.Role == models.RoleSuperAdmin
}

// CanAssignRole reports whether actor may grant targetRole to a user.
// Only super admins assign roles, and only roles from the fixed set.
func CanAssignRole(actor *models.User, targetRole models.Role) bool {
	if actor == nil || targetRole == "" {
		return false
	}
	if actor.Role != models.RoleSuperAdmin {
		return false
	}
	return models.IsValidRole(targetRole)
}
