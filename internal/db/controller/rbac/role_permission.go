package rbac

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoEduAdmin/GoEduAdmin/internal/authz"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

// RolePermissionStore implements authz.RolePermissionRepo on top of GORM.
type RolePermissionStore struct {
	db *gorm.DB
}

// NewRolePermissionStore creates a role-permission edge store.
func NewRolePermissionStore(db *gorm.DB) *RolePermissionStore {
	return &RolePermissionStore{db: db}
}

// ByRole returns all edges for a role.
func (s *RolePermissionStore) ByRole(ctx context.Context, roleID uint) ([]models.RolePermission, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var edges []models.RolePermission

	result := s.db.WithContext(ctx).Where("role_id = ?", roleID).Find(&edges)
	if result.Error != nil {
		return nil, result.Error
	}

	return edges, nil
}

// Grant inserts granted edges for the role without touching existing ones.
func (s *RolePermissionStore) Grant(ctx context.Context, roleID uint, permissionIDs []uint, grantedBy string) error {
	if s.db == nil {
		return ErrDBNil
	}

	return s.grant(s.db.WithContext(ctx), roleID, permissionIDs, grantedBy)
}

// Replace removes every edge of the role and inserts one granted edge per
// permission ID within a single transaction.
func (s *RolePermissionStore) Replace(ctx context.Context, roleID uint, permissionIDs []uint, grantedBy string) error {
	if s.db == nil {
		return ErrDBNil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).
			Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}

		return s.grant(tx, roleID, permissionIDs, grantedBy)
	})
}

func (s *RolePermissionStore) grant(tx *gorm.DB, roleID uint, permissionIDs []uint, grantedBy string) error {
	now := time.Now()

	for _, permissionID := range permissionIDs {
		edge := models.RolePermission{
			RoleID:       roleID,
			PermissionID: permissionID,
			IsGranted:    true,
			GrantedBy:    grantedBy,
			GrantedAt:    now,
		}

		if err := tx.Omit(clause.Associations).Create(&edge).Error; err != nil {
			return err
		}
	}

	return nil
}

var _ authz.RolePermissionRepo = (*RolePermissionStore)(nil)
