package userpolicy_test

import (
	"testing"

	"github.com/slatetrack/slatetrack/internal/app/policy/userpolicy"
	"github.com/slatetrack/slatetrack/internal/domain/models"
)

func userWithRole(role models.Role) *models.User {
	return &models.User{ID: "u1", Role: role}
}

func TestCanManageUsers(t *testing.T) {
	tests := []struct {
		name  string
		actor *models.User
		want  bool
	}{
		{"super admin", userWithRole(models.RoleSuperAdmin), true},
		{"admin", userWithRole(models.RoleAdmin), false},
		{"member", userWithRole(models.RoleMember), false},
		{"absent", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userpolicy.CanManageUsers(tt.actor); got != tt.want {
				t.Errorf("CanManageUsers = %v, want %v", got, tt.want)
			}
			if got := userpolicy.CanRemoveUser(tt.actor); got != tt.want {
				t.Errorf("CanRemoveUser = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAssignRole(t *testing.T) {
	super := userWithRole(models.RoleSuperAdmin)

	tests := []struct {
		name       string
		actor      *models.User
		targetRole models.Role
		want       bool
	}{
		{"super assigns super", super, models.RoleSuperAdmin, true},
		{"super assigns admin", super, models.RoleAdmin, true},
		{"super assigns member", super, models.RoleMember, true},
		{"super assigns unknown role", super, "OWNER", false},
		{"super assigns empty role", super, "", false},
		{"admin assigns member", userWithRole(models.RoleAdmin), models.RoleMember, false},
		{"member assigns member", userWithRole(models.RoleMember), models.RoleMember, false},
		{"absent actor", nil, models.RoleMember, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userpolicy.CanAssignRole(tt.actor, tt.targetRole); got != tt.want {
				t.Errorf("CanAssignRole = %v, want %v", got, tt.want)
			}
		})
	}
}
