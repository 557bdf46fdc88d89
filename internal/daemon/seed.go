package daemon

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoEduAdmin/GoEduAdmin/internal/authz"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
	"github.com/GoEduAdmin/GoEduAdmin/internal/uniuri"
)

const seededBy = "system"

// menuSeed describes one navigation node and the permissions attached to it.
type menuSeed struct {
	name        string
	displayName string
	icon        string
	route       string
	parent      string // empty for roots
	sortOrder   int
	permissions map[string]models.PermissionKind // key -> kind
}

func menuSeeds() []menuSeed {
	return []menuSeed{
		{
			name: "dashboard", displayName: "Dashboard", icon: "home", route: "/dashboard", sortOrder: 1,
			permissions: map[string]models.PermissionKind{
				authz.PermDashboardView: models.PermissionKindView,
			},
		},
		{
			name: "students", displayName: "Students", icon: "users", route: "/students", sortOrder: 2,
			permissions: map[string]models.PermissionKind{
				authz.PermStudentsView:   models.PermissionKindView,
				authz.PermStudentsCreate: models.PermissionKindCreate,
				authz.PermStudentsEdit:   models.PermissionKindEdit,
				authz.PermStudentsDelete: models.PermissionKindDelete,
			},
		},
		{
			name: "content", displayName: "Courses", icon: "book", route: "/content", sortOrder: 3,
			permissions: map[string]models.PermissionKind{
				authz.PermContentView:   models.PermissionKindView,
				authz.PermContentCreate: models.PermissionKindCreate,
				authz.PermContentEdit:   models.PermissionKindEdit,
				authz.PermContentDelete: models.PermissionKindDelete,
			},
		},
		{
			name: "finance", displayName: "Finance", icon: "credit-card", route: "/finance", sortOrder: 4,
			permissions: map[string]models.PermissionKind{},
		},
		{
			name: "finance.billing", displayName: "Billing", route: "/finance/billing",
			parent: "finance", sortOrder: 1,
			permissions: map[string]models.PermissionKind{
				authz.PermBillingView:    models.PermissionKindView,
				authz.PermBillingExecute: models.PermissionKindExecute,
			},
		},
		{
			name: "finance.subscriptions", displayName: "Subscriptions", route: "/finance/subscriptions",
			parent: "finance", sortOrder: 2,
			permissions: map[string]models.PermissionKind{
				authz.PermSubscriptionsView: models.PermissionKindView,
				authz.PermSubscriptionsEdit: models.PermissionKindEdit,
			},
		},
		{
			name: "administration", displayName: "Administration", icon: "settings", route: "/admin", sortOrder: 5,
			permissions: map[string]models.PermissionKind{
				authz.PermAdminUsers:       models.PermissionKindAdmin,
				authz.PermAdminRoles:       models.PermissionKindAdmin,
				authz.PermAdminPermissions: models.PermissionKindAdmin,
				authz.PermAdminMenus:       models.PermissionKindAdmin,
			},
		},
	}
}

// roleSeeds maps every system role to its display name and initial
// permission grants. The super admin grant list names every permission
// explicitly, there is no implicit bypass in resolution.
func roleSeeds(allKeys []string) map[models.SystemRole]struct {
	name        string
	description string
	permissions []string
} {
	return map[models.SystemRole]struct {
		name        string
		description string
		permissions []string
	}{
		models.SystemRoleSuperAdmin: {
			name:        "Super Administrator",
			description: "Unrestricted platform operator",
			permissions: allKeys,
		},
		models.SystemRoleAdmin: {
			name:        "Administrator",
			description: "Manages users, roles and navigation",
			permissions: []string{
				authz.PermDashboardView,
				authz.PermAdminUsers,
				authz.PermAdminRoles,
				authz.PermAdminPermissions,
				authz.PermAdminMenus,
			},
		},
		models.SystemRoleFinance: {
			name:        "Finance",
			description: "Manages billing and subscriptions",
			permissions: []string{
				authz.PermDashboardView,
				authz.PermBillingView,
				authz.PermBillingExecute,
				authz.PermSubscriptionsView,
				authz.PermSubscriptionsEdit,
			},
		},
		models.SystemRoleAccounts: {
			name:        "Accounts",
			description: "Manages student accounts",
			permissions: []string{
				authz.PermDashboardView,
				authz.PermStudentsView,
				authz.PermStudentsCreate,
				authz.PermStudentsEdit,
				authz.PermStudentsDelete,
			},
		},
		models.SystemRoleContentManager: {
			name:        "Content Manager",
			description: "Manages courses and learning content",
			permissions: []string{
				authz.PermDashboardView,
				authz.PermContentView,
				authz.PermContentCreate,
				authz.PermContentEdit,
				authz.PermContentDelete,
			},
		},
		models.SystemRoleUser: {
			name:        "User",
			description: "Regular platform user",
			permissions: []string{
				authz.PermDashboardView,
			},
		},
	}
}

// seed populates menus, system permissions, system roles and the default
// admin account on first start. It is idempotent: a database that already
// holds roles is left untouched.
func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Role{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to inspect roles: %w", err)
	}

	if count > 0 {
		return nil
	}

	menuIDs := make(map[string]uint)
	permIDs := make(map[string]uint)
	allKeys := make([]string, 0)

	for _, m := range menuSeeds() {
		menu := models.Menu{
			Name:        m.name,
			DisplayName: m.displayName,
			Icon:        m.icon,
			Route:       m.route,
			SortOrder:   m.sortOrder,
			IsActive:    true,
		}

		if m.parent != "" {
			parentID, ok := menuIDs[m.parent]
			if !ok {
				return fmt.Errorf("seed menu %q references unknown parent %q", m.name, m.parent)
			}

			menu.ParentMenuID = &parentID
		}

		if err := db.Create(&menu).Error; err != nil {
			return fmt.Errorf("failed to seed menu %q: %w", m.name, err)
		}

		menuIDs[m.name] = menu.ID

		for key, kind := range m.permissions {
			permission := models.Permission{
				MenuID:        menu.ID,
				Kind:          kind,
				PermissionKey: key,
				IsActive:      true,
				IsSystem:      true,
			}

			if err := db.Create(&permission).Error; err != nil {
				return fmt.Errorf("failed to seed permission %q: %w", key, err)
			}

			permIDs[key] = permission.ID
			allKeys = append(allKeys, key)
		}
	}

	for systemRole, r := range roleSeeds(allKeys) {
		role := models.Role{
			Name:        r.name,
			SystemRole:  systemRole,
			Description: r.description,
			IsActive:    true,
		}

		if err := db.Create(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %q: %w", r.name, err)
		}

		for _, key := range r.permissions {
			permissionID, ok := permIDs[key]
			if !ok {
				return fmt.Errorf("seed role %q references unknown permission %q", r.name, key)
			}

			edge := models.RolePermission{
				RoleID:       role.ID,
				PermissionID: permissionID,
				IsGranted:    true,
				GrantedBy:    seededBy,
				GrantedAt:    time.Now(),
			}

			if err := db.Omit(clause.Associations).Create(&edge).Error; err != nil {
				return fmt.Errorf("failed to seed grant %q -> %q: %w", r.name, key, err)
			}
		}
	}

	return seedAdminUser(db)
}

// seedAdminUser creates the initial super admin account with a random
// password. The password is printed to the log once; it must be changed
// after first login.
func seedAdminUser(db *gorm.DB) error {
	password := uniuri.NewLen(20)

	admin := models.User{
		Active:    true,
		Email:     "admin@localhost",
		Password:  models.HashPassword(password),
		FirstName: "Admin",
	}

	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	var role models.Role
	if err := db.Where("system_role = ?", models.SystemRoleSuperAdmin).First(&role).Error; err != nil {
		return fmt.Errorf("failed to load super admin role: %w", err)
	}

	assignment := models.UserRole{
		UserID:     admin.ID,
		RoleID:     role.ID,
		IsActive:   true,
		AssignedBy: seededBy,
		AssignedAt: time.Now(),
	}

	if err := db.Omit(clause.Associations).Create(&assignment).Error; err != nil {
		return fmt.Errorf("failed to assign super admin role: %w", err)
	}

	log.Warn().Str("email", admin.Email).Str("password", password).
		Msg("seeded initial admin account, change the password after first login")

	return nil
}
