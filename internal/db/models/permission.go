package models

import "time"

// PermissionKind classifies what a permission allows on its owning menu.
type PermissionKind string

const (
	// PermissionKindView allows viewing the menu's resource.
	PermissionKindView PermissionKind = "view"
	// PermissionKindCreate allows creating records under the menu's resource.
	PermissionKindCreate PermissionKind = "create"
	// PermissionKindEdit allows editing records under the menu's resource.
	PermissionKindEdit PermissionKind = "edit"
	// PermissionKindDelete allows deleting records under the menu's resource.
	PermissionKindDelete PermissionKind = "delete"
	// PermissionKindExecute allows triggering actions (imports, report runs).
	PermissionKindExecute PermissionKind = "execute"
	// PermissionKindAdmin allows administrative operations on the resource.
	PermissionKindAdmin PermissionKind = "admin"
)

// Permission represents a specific permission in the authorization system.
// Permissions define granular access rights to resources and actions.
// They are assigned to roles, which are then assigned to users.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey"`
	// MenuID is the ID of the menu this permission belongs to.
	MenuID uint `gorm:"column:menu_id;not null;index"`
	// Kind is the action class this permission grants on its menu.
	Kind PermissionKind `gorm:"type:varchar(20);not null"`
	// PermissionKey is the globally unique permission identifier in
	// resource.action format (e.g., "students.view").
	PermissionKey string `gorm:"column:permission_key;unique;size:100;not null"`
	// Description provides a human-readable explanation of what this permission grants.
	Description string `gorm:"size:255"`
	// IsActive indicates whether the permission participates in resolution.
	IsActive bool `gorm:"default:true"`
	// IsSystem indicates if this is a system permission that cannot be deleted.
	IsSystem bool `gorm:"default:false"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Permission model.
// This overrides GORM's default pluralized table naming.
func (Permission) TableName() string {
	return "permissions"
}
