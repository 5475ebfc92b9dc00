package admin

// Permission represents an admin permission
type Permission string

const (
	// Account management
	PermViewAccounts   Permission = "accounts.view"
	PermBanAccounts    Permission = "accounts.ban"
	PermDeleteAccounts Permission = "accounts.delete"

	// Report moderation
	PermViewReports     Permission = "reports.view"
	PermModerateReports Permission = "reports.moderate"
	PermDeleteReports   Permission = "reports.delete"

	// Unban petitions
	PermDecideUnbans Permission = "unbans.decide"

	// System
	PermManageAdmins  Permission = "admins.manage"
	PermViewAuditLogs Permission = "audit.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermViewAccounts, PermBanAccounts, PermDeleteAccounts,
		PermViewReports, PermModerateReports, PermDeleteReports,
		PermDecideUnbans,
		PermManageAdmins, PermViewAuditLogs,
	},
	RoleAdmin: {
		PermViewAccounts, PermBanAccounts, PermDeleteAccounts,
		PermViewReports, PermModerateReports, PermDeleteReports,
		PermDecideUnbans,
		PermViewAuditLogs,
	},
	RoleModerator: {
		PermViewAccounts, PermBanAccounts,
		PermViewReports, PermModerateReports,
		PermDecideUnbans,
	},
	RoleSupport: {
		PermViewAccounts,
		PermViewReports,
	},
}

// RoleHierarchy defines role levels (higher = more permissions)
var RoleHierarchy = map[Role]int{
	RoleSuperAdmin: 100,
	RoleAdmin:      80,
	RoleModerator:  60,
	RoleSupport:    40,
}

// CanManage checks if role1 can manage role2
func CanManage(role1, role2 Role) bool {
	return RoleHierarchy[role1] > RoleHierarchy[role2]
}
