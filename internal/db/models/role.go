package models

import "time"

// Role represents a role in the role-based access control (RBAC) system.
// Roles are collections of permissions that can be assigned to users.
// Every role is bound to exactly one SystemRole value; roles are never
// hard-deleted, only deactivated.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey"`
	// Name is the unique display name of the role (e.g., "Content Manager").
	Name string `gorm:"unique;size:100;not null"`
	// SystemRole is the fixed system role value this role is bound to.
	// At most one role exists per system role value.
	SystemRole SystemRole `gorm:"column:system_role;type:varchar(50);unique;not null"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"size:255"`
	// IsActive indicates whether the role participates in permission resolution.
	IsActive bool `gorm:"default:true"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Role model.
// This overrides GORM's default pluralized table naming.
func (Role) TableName() string {
	return "roles"
}
