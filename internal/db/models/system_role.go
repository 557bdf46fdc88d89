package models

// SystemRole identifies one of the fixed, well-known roles of the platform.
// Exactly one Role row exists per SystemRole value (enforced by a unique
// constraint); administrators cannot invent new system roles at runtime.
type SystemRole string

const (
	// SystemRoleSuperAdmin is the unrestricted platform operator role.
	SystemRoleSuperAdmin SystemRole = "super_admin"
	// SystemRoleAdmin manages users, roles and menus of the back office.
	SystemRoleAdmin SystemRole = "admin"
	// SystemRoleFinance manages billing and payment records.
	SystemRoleFinance SystemRole = "finance"
	// SystemRoleAccounts manages student and teacher accounts.
	SystemRoleAccounts SystemRole = "accounts"
	// SystemRoleContentManager manages courses and learning content.
	SystemRoleContentManager SystemRole = "content_manager"
	// SystemRoleUser is the default role for regular platform users.
	SystemRoleUser SystemRole = "user"
)

// KnownSystemRoles lists every valid SystemRole value.
func KnownSystemRoles() []SystemRole {
	return []SystemRole{
		SystemRoleSuperAdmin,
		SystemRoleAdmin,
		SystemRoleFinance,
		SystemRoleAccounts,
		SystemRoleContentManager,
		SystemRoleUser,
	}
}

// Valid reports whether the value is one of the known system roles.
func (r SystemRole) Valid() bool {
	for _, known := range KnownSystemRoles() {
		if r == known {
			return true
		}
	}

	return false
}
