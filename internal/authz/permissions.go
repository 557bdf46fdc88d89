package authz

// Permission key constants define the available permissions in the system.
// These are used for role-based access control (RBAC) to restrict access
// to specific resources and actions. Keys follow the resource.action format
// and must match the seeded Permission rows.
const (
	// PermDashboardView allows viewing the back-office dashboard.
	PermDashboardView = "dashboard.view"

	// PermStudentsView allows viewing student accounts.
	PermStudentsView = "students.view"
	// PermStudentsCreate allows creating student accounts.
	PermStudentsCreate = "students.create"
	// PermStudentsEdit allows editing student accounts.
	PermStudentsEdit = "students.edit"
	// PermStudentsDelete allows deactivating student accounts.
	PermStudentsDelete = "students.delete"

	// PermContentView allows viewing courses and learning content.
	PermContentView = "content.view"
	// PermContentCreate allows creating courses and learning content.
	PermContentCreate = "content.create"
	// PermContentEdit allows editing courses and learning content.
	PermContentEdit = "content.edit"
	// PermContentDelete allows removing courses and learning content.
	PermContentDelete = "content.delete"

	// PermBillingView allows viewing invoices and payment records.
	PermBillingView = "billing.view"
	// PermBillingExecute allows running billing actions (refunds, charges).
	PermBillingExecute = "billing.execute"

	// PermSubscriptionsView allows viewing user subscriptions.
	PermSubscriptionsView = "subscriptions.view"
	// PermSubscriptionsEdit allows editing user subscriptions.
	PermSubscriptionsEdit = "subscriptions.edit"

	// PermAdminUsers allows managing user accounts.
	PermAdminUsers = "admin.users"
	// PermAdminRoles allows managing roles and their permission sets.
	PermAdminRoles = "admin.roles"
	// PermAdminPermissions allows managing permission definitions.
	PermAdminPermissions = "admin.permissions"
	// PermAdminMenus allows managing the navigation menu tree.
	PermAdminMenus = "admin.menus"
)
