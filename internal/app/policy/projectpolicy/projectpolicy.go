// Package projectpolicy provides authorization policies for projects.
//
// Authorization rules:
//   - Super admins and admins can create projects and change settings
//   - Visibility: a project is viewable by anyone when PUBLIC, and by its
//     creator, members, and invited users when PRIVATE
package projectpolicy

import "github.com/slatetrack/slatetrack/internal/domain/models"

// CanAccessProjectSettings reports whether actor may create projects or
// change project settings (including membership).
func CanAccessProjectSettings(actor *models.User) bool {
	return actor != nil && (actor.Role == models.RoleSuperAdmin || actor.Role == models.RoleAdmin)
}

// CanViewProject reports whether the user with userID may see project.
func CanViewProject(project *models.Project, userID string) bool {
	if project == nil || userID == "" {
		return false
	}
	if project.Visibility == models.VisibilityPublic {
		return true
	}
	if project.CreatedBy == userID {
		return true
	}
	for _, m := range project.Members {
		if m.UserID == userID {
			return true
		}
	}
	for _, id := range project.Invited {
		if id == userID {
			return true
		}
	}
	return false
}
