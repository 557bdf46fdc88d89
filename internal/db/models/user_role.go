package models

import "time"

// UserRole couples a user identity to a role. A user may hold multiple
// simultaneously-active roles. Deactivation is soft: the row is retained with
// IsActive set to false so assignment history survives recomputation of the
// user's effective permissions.
type UserRole struct {
	// UserID is the ID of the user in this assignment.
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	// RoleID is the ID of the role in this assignment.
	RoleID uint `gorm:"primaryKey;column:role_id"`
	// IsActive indicates whether this assignment contributes to resolution.
	IsActive bool `gorm:"default:true"`
	// AssignedBy records which administrator made this assignment.
	AssignedBy string `gorm:"size:100"`
	// AssignedAt is the timestamp of the original assignment.
	AssignedAt time.Time
	// UpdatedAt is the timestamp of the last activation change (managed by GORM).
	UpdatedAt time.Time
	// Role is the associated role (loaded via foreign key).
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the UserRole model.
// This overrides GORM's default pluralized table naming.
func (UserRole) TableName() string {
	return "user_roles"
}
