package models

import "time"

// RolePermission represents one edge in the role-to-permission graph.
// The (RoleID, PermissionID) pair is unique. Edges are replaced wholesale
// when an administrator edits a role's permission set.
type RolePermission struct {
	// RoleID is the ID of the role in this mapping.
	RoleID uint `gorm:"primaryKey;column:role_id"`
	// PermissionID is the ID of the permission in this mapping.
	PermissionID uint `gorm:"primaryKey;column:permission_id"`
	// IsGranted indicates whether this edge grants (true) or withholds the permission.
	IsGranted bool `gorm:"default:true"`
	// GrantedBy records which administrator created this edge.
	GrantedBy string `gorm:"size:100"`
	// GrantedAt is the timestamp when this edge was created.
	GrantedAt time.Time
	// Role is the associated role (loaded via foreign key).
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	// Permission is the associated permission (loaded via foreign key).
	Permission Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the RolePermission model.
// This overrides GORM's default pluralized table naming.
func (RolePermission) TableName() string {
	return "role_permissions"
}
