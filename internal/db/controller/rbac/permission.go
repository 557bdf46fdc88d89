package rbac

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/GoEduAdmin/GoEduAdmin/internal/authz"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

// ErrSystemPermission is returned when attempting to deactivate a permission
// flagged as a system permission.
var ErrSystemPermission = errors.New("system permissions cannot be deactivated")

// PermissionStore implements authz.PermissionRepo on top of GORM.
type PermissionStore struct {
	db *gorm.DB
}

// NewPermissionStore creates a permission store.
func NewPermissionStore(db *gorm.DB) *PermissionStore {
	return &PermissionStore{db: db}
}

// ByKey fetches a permission by its unique permission key.
func (s *PermissionStore) ByKey(ctx context.Context, key string) (*models.Permission, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	if key == "" {
		return nil, authz.ErrPermissionNotFound
	}

	var permission models.Permission

	result := s.db.WithContext(ctx).Where("permission_key = ?", key).First(&permission)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, authz.ErrPermissionNotFound
		}

		return nil, result.Error
	}

	return &permission, nil
}

// List returns all permissions ordered by key.
func (s *PermissionStore) List(ctx context.Context) ([]models.Permission, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var permissions []models.Permission

	result := s.db.WithContext(ctx).Order("permission_key").Find(&permissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return permissions, nil
}

// Create inserts a new permission.
func (s *PermissionStore) Create(ctx context.Context, permission *models.Permission) error {
	if s.db == nil {
		return ErrDBNil
	}

	if permission.PermissionKey == "" {
		return ErrNameEmpty
	}

	return s.db.WithContext(ctx).Create(permission).Error
}

// SetActive toggles a permission's active flag. System permissions are
// protected from deactivation.
func (s *PermissionStore) SetActive(ctx context.Context, id uint, active bool) error {
	if s.db == nil {
		return ErrDBNil
	}

	var permission models.Permission

	result := s.db.WithContext(ctx).First(&permission, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return authz.ErrPermissionNotFound
		}

		return result.Error
	}

	if permission.IsSystem && !active {
		return ErrSystemPermission
	}

	return s.db.WithContext(ctx).Model(&permission).Update("is_active", active).Error
}

// ActiveGrantedByUser returns the user's effective permission set with a
// single join: active user roles, active roles, granted edges, active
// permissions. De-duplicated by permission ID.
func (s *PermissionStore) ActiveGrantedByUser(ctx context.Context, userID uint64) ([]models.Permission, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var permissions []models.Permission

	err := s.db.WithContext(ctx).Table("permissions").
		Select("DISTINCT permissions.*").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id AND role_permissions.is_granted = ?", true).
		Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id AND user_roles.is_active = ?", true).
		Joins("JOIN roles ON roles.id = user_roles.role_id AND roles.is_active = ?", true).
		Where("user_roles.user_id = ? AND permissions.is_active = ?", userID, true).
		Find(&permissions).Error
	if err != nil {
		return nil, err
	}

	return permissions, nil
}

var _ authz.PermissionRepo = (*PermissionStore)(nil)
