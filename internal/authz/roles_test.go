package authz

import "testing"

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{RoleBuyer, RoleSeller, RoleAdmin} {
		if !IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "landlord", "Admin", "SELLER"} {
		if IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = true, want false", role)
		}
	}
}
