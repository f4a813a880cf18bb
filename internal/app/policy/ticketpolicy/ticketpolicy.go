// Package ticketpolicy provides authorization policies for work items.
//
// Authorization rules:
//   - Super admins and admins can create tickets and edit ticket fields
//   - Any signed-in user can move a ticket's status or comment on it
//
// Authorization is coarse by design: predicates consult the actor's global
// role only, never project membership.
package ticketpolicy

import "github.com/slatetrack/slatetrack/internal/domain/models"

// CanEditTicket reports whether actor may create work items or edit their
// fields.
func CanEditTicket(actor *models.User) bool {
	return actor != nil && (actor.Role == models.RoleSuperAdmin || actor.Role == models.RoleAdmin)
}

// CanMoveTicket reports whether actor may change a work item's status.
func CanMoveTicket(actor *models.User) bool {
	return actor != nil
}

// CanComment reports whether actor may comment on a work item.
func CanComment(actor *models.User) bool {
	return actor != nil
}
