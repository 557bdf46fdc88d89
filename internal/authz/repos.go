package authz

import (
	"context"

	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

// RoleRepo provides access to Role records.
type RoleRepo interface {
	// ByID fetches a role by its ID.
	ByID(ctx context.Context, id uint) (*models.Role, error)
	// BySystemRole fetches the role bound to the given system role value.
	BySystemRole(ctx context.Context, systemRole models.SystemRole) (*models.Role, error)
	// List returns all roles.
	List(ctx context.Context) ([]models.Role, error)
	// Create inserts a new role. The (Name, SystemRole) uniqueness constraints apply.
	Create(ctx context.Context, role *models.Role) error
	// Update persists changes to an existing role.
	Update(ctx context.Context, role *models.Role) error
	// Deactivate soft-deactivates a role.
	Deactivate(ctx context.Context, id uint) error
}

// PermissionRepo provides access to Permission records.
type PermissionRepo interface {
	// ByKey fetches a permission by its unique permission key.
	ByKey(ctx context.Context, key string) (*models.Permission, error)
	// List returns all permissions.
	List(ctx context.Context) ([]models.Permission, error)
	// Create inserts a new permission. The PermissionKey uniqueness constraint applies.
	Create(ctx context.Context, permission *models.Permission) error
	// SetActive toggles a permission's active flag. System permissions cannot
	// be deactivated.
	SetActive(ctx context.Context, id uint, active bool) error
	// ActiveGrantedByUser returns the user's effective permission set: every
	// active permission reachable through an active user role via a granted
	// role-permission edge, de-duplicated by permission ID.
	ActiveGrantedByUser(ctx context.Context, userID uint64) ([]models.Permission, error)
}

// MenuRepo provides access to Menu records.
type MenuRepo interface {
	// ByID fetches a menu by its ID.
	ByID(ctx context.Context, id uint) (*models.Menu, error)
	// ListActive returns all active menus.
	ListActive(ctx context.Context) ([]models.Menu, error)
	// List returns all menus, active or not.
	List(ctx context.Context) ([]models.Menu, error)
	// Create inserts a new menu. The Name uniqueness constraint applies.
	Create(ctx context.Context, menu *models.Menu) error
	// Update persists changes to an existing menu.
	Update(ctx context.Context, menu *models.Menu) error
	// Deactivate soft-deactivates a menu.
	Deactivate(ctx context.Context, id uint) error
}

// UserRoleRepo provides access to UserRole assignment records.
type UserRoleRepo interface {
	// ActiveByUser returns the user's active role assignments with the Role
	// association populated.
	ActiveByUser(ctx context.Context, userID uint64) ([]models.UserRole, error)
	// Upsert inserts the assignment or, if the (UserID, RoleID) row already
	// exists, reactivates it in place. Implementations must perform this as a
	// single conditional statement so concurrent assignments cannot duplicate
	// the row.
	Upsert(ctx context.Context, assignment *models.UserRole) error
	// Deactivate soft-deactivates the (userID, roleID) assignment if present.
	// Returns the repository's not-found error when no row exists.
	Deactivate(ctx context.Context, userID uint64, roleID uint) error
}

// RolePermissionRepo provides access to the role-to-permission edge set.
type RolePermissionRepo interface {
	// ByRole returns all edges for a role.
	ByRole(ctx context.Context, roleID uint) ([]models.RolePermission, error)
	// Replace removes every edge of the role and inserts one granted edge per
	// permission ID, atomically.
	Replace(ctx context.Context, roleID uint, permissionIDs []uint, grantedBy string) error
	// Grant inserts granted edges for the role without touching existing ones.
	Grant(ctx context.Context, roleID uint, permissionIDs []uint, grantedBy string) error
}
