package admin

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleSuperAdmin, PermManageAdmins, true},
		{RoleSuperAdmin, PermDeleteReports, true},
		{RoleAdmin, PermManageAdmins, false},
		{RoleAdmin, PermDeleteAccounts, true},
		{RoleModerator, PermBanAccounts, true},
		{RoleModerator, PermDecideUnbans, true},
		{RoleModerator, PermDeleteAccounts, false},
		{RoleModerator, PermDeleteReports, false},
		{RoleSupport, PermViewAccounts, true},
		{RoleSupport, PermBanAccounts, false},
		{Role("unknown"), PermViewAccounts, false},
	}

	for _, tt := range tests {
		admin := &AdminUser{Role: tt.role}
		if got := admin.HasPermission(tt.perm); got != tt.want {
			t.Errorf("%s.HasPermission(%s) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestCanManage(t *testing.T) {
	tests := []struct {
		manager Role
		target  Role
		want    bool
	}{
		{RoleSuperAdmin, RoleAdmin, true},
		{RoleSuperAdmin, RoleSuperAdmin, false},
		{RoleAdmin, RoleModerator, true},
		{RoleAdmin, RoleSuperAdmin, false},
		{RoleModerator, RoleSupport, true},
		{RoleSupport, RoleSupport, false},
	}

	for _, tt := range tests {
		if got := CanManage(tt.manager, tt.target); got != tt.want {
			t.Errorf("CanManage(%s, %s) = %v, want %v", tt.manager, tt.target, got, tt.want)
		}
	}
}

func TestEveryRoleHasHierarchyLevel(t *testing.T) {
	for role := range RolePermissions {
		if _, ok := RoleHierarchy[role]; !ok {
			t.Errorf("role %s has permissions but no hierarchy level", role)
		}
	}
}
