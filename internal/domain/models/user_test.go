package models

import (
	"reflect"
	"testing"
)

func TestNormalizeUserCanonical(t *testing.T) {
	u := NormalizeUser(User{
		ID:        "u1",
		FirstName: "  Ada ",
		LastName:  " Lovelace ",
		Email:     "ADA@Example.COM",
		Username:  " Ada ",
		Password:  "secret",
		Position:  "Backend Dev",
		Role:      RoleAdmin,
	})

	if u.FirstName != "Ada" || u.LastName != "Lovelace" {
		t.Errorf("expected trimmed names, got %q %q", u.FirstName, u.LastName)
	}
	if u.Name != "Ada Lovelace" {
		t.Errorf("expected derived display name, got %q", u.Name)
	}
	if u.Email != "ada@example.com" {
		t.Errorf("expected lowercased email, got %q", u.Email)
	}
	if u.Username != "ada" {
		t.Errorf("expected lowercased username, got %q", u.Username)
	}
}

func TestNormalizeUserLegacyNameSplit(t *testing.T) {
	u := NormalizeUser(User{ID: "u1", Name: "Grace Brewster Hopper", Role: RoleMember})

	if u.FirstName != "Grace" {
		t.Errorf("expected first name %q, got %q", "Grace", u.FirstName)
	}
	if u.LastName != "Brewster Hopper" {
		t.Errorf("expected last name %q, got %q", "Brewster Hopper", u.LastName)
	}
}

func TestNormalizeUserEmptyNameFallback(t *testing.T) {
	u := NormalizeUser(User{ID: "u1", Role: RoleMember})
	if u.FirstName != "User" {
		t.Errorf("expected fallback first name, got %q", u.FirstName)
	}
}

func TestNormalizeUserInvalidPositionAndRole(t *testing.T) {
	u := NormalizeUser(User{ID: "u1", FirstName: "X", Position: "Astronaut", Role: "OWNER"})
	if u.Position != Positions[0] {
		t.Errorf("expected fallback position %q, got %q", Positions[0], u.Position)
	}
	if u.Role != RoleMember {
		t.Errorf("expected fallback role MEMBER, got %q", u.Role)
	}
}

func TestNormalizeUserLegacyPositionSpelling(t *testing.T) {
	u := NormalizeUser(User{ID: "u1", FirstName: "X", Position: "Tean Lead", Role: RoleAdmin})
	if u.Position != "Team Lead" {
		t.Errorf("expected legacy spelling migrated, got %q", u.Position)
	}
}

func TestNormalizeUserFixedPoint(t *testing.T) {
	once := NormalizeUser(User{
		ID:        "u1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Username:  "ada",
		Password:  "pw",
		Position:  "QA",
		Role:      RoleSuperAdmin,
	})
	twice := NormalizeUser(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("NormalizeUser not a fixed point:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestCanAssignableRoles(t *testing.T) {
	for _, r := range AllRoles {
		if !IsValidRole(r) {
			t.Errorf("expected %q valid", r)
		}
	}
	if IsValidRole("OWNER") || IsValidRole("") {
		t.Error("expected unknown roles to be invalid")
	}
}
