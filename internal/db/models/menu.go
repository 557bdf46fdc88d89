package models

import "time"

// Menu represents a navigation entry of the back office.
// Menus form a rooted tree via ParentMenuID; permissions belong to menus, and
// the client-visible tree is pruned to the menus a user can act on.
type Menu struct {
	// ID is the unique identifier for the menu.
	ID uint `gorm:"primaryKey"`
	// Name is the unique internal name of the menu (e.g., "admin.roles").
	Name string `gorm:"unique;size:100;not null"`
	// DisplayName is the label shown to users.
	DisplayName string `gorm:"size:100;not null"`
	// Icon is the icon identifier used by the client.
	Icon string `gorm:"size:50"`
	// Route is the client route this menu links to.
	Route string `gorm:"size:255"`
	// ParentMenuID is the ID of the parent menu, nil for root menus.
	ParentMenuID *uint `gorm:"column:parent_menu_id;index"`
	// SortOrder orders siblings within the same parent, ascending.
	SortOrder int `gorm:"default:0"`
	// IsActive indicates whether the menu is shown and its permissions resolve.
	IsActive bool `gorm:"default:true"`
	// CreatedAt is the timestamp when the menu was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the menu was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Menu model.
// This overrides GORM's default pluralized table naming.
func (Menu) TableName() string {
	return "menus"
}
