package rbac

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/GoEduAdmin/GoEduAdmin/internal/authz"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

// RoleStore implements authz.RoleRepo on top of GORM.
type RoleStore struct {
	db *gorm.DB
}

// NewRoleStore creates a role store.
func NewRoleStore(db *gorm.DB) *RoleStore {
	return &RoleStore{db: db}
}

// ByID fetches a role by its ID.
func (s *RoleStore) ByID(ctx context.Context, id uint) (*models.Role, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var role models.Role

	result := s.db.WithContext(ctx).First(&role, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, authz.ErrRoleNotFound
		}

		return nil, result.Error
	}

	return &role, nil
}

// BySystemRole fetches the role bound to the given system role value.
func (s *RoleStore) BySystemRole(ctx context.Context, systemRole models.SystemRole) (*models.Role, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var role models.Role

	result := s.db.WithContext(ctx).Where("system_role = ?", systemRole).First(&role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, authz.ErrRoleNotFound
		}

		return nil, result.Error
	}

	return &role, nil
}

// List returns all roles ordered by name.
func (s *RoleStore) List(ctx context.Context) ([]models.Role, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role

	result := s.db.WithContext(ctx).Order("name").Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}

// Create inserts a new role.
func (s *RoleStore) Create(ctx context.Context, role *models.Role) error {
	if s.db == nil {
		return ErrDBNil
	}

	if role.Name == "" {
		return ErrNameEmpty
	}

	return s.db.WithContext(ctx).Create(role).Error
}

// Update persists changes to an existing role.
func (s *RoleStore) Update(ctx context.Context, role *models.Role) error {
	if s.db == nil {
		return ErrDBNil
	}

	result := s.db.WithContext(ctx).Save(role)

	return result.Error
}

// Deactivate soft-deactivates a role. The row is retained.
func (s *RoleStore) Deactivate(ctx context.Context, id uint) error {
	if s.db == nil {
		return ErrDBNil
	}

	result := s.db.WithContext(ctx).Model(&models.Role{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return authz.ErrRoleNotFound
	}

	return nil
}

var _ authz.RoleRepo = (*RoleStore)(nil)
