package rbac

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoEduAdmin/GoEduAdmin/internal/authz"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

// UserRoleStore implements authz.UserRoleRepo on top of GORM.
type UserRoleStore struct {
	db *gorm.DB
}

// NewUserRoleStore creates a user-role assignment store.
func NewUserRoleStore(db *gorm.DB) *UserRoleStore {
	return &UserRoleStore{db: db}
}

// ActiveByUser returns the user's active role assignments with the Role
// association preloaded.
func (s *UserRoleStore) ActiveByUser(ctx context.Context, userID uint64) ([]models.UserRole, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var assignments []models.UserRole

	result := s.db.WithContext(ctx).Preload("Role").
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&assignments)
	if result.Error != nil {
		return nil, result.Error
	}

	return assignments, nil
}

// Upsert inserts the assignment or reactivates an existing (user_id, role_id)
// row in place. Runs as a single conflict-aware insert so two concurrent
// assignments of the same pair cannot both insert; the unique key decides.
func (s *UserRoleStore) Upsert(ctx context.Context, assignment *models.UserRole) error {
	if s.db == nil {
		return ErrDBNil
	}

	return s.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "role_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_active":   true,
			"assigned_by": assignment.AssignedBy,
			"updated_at":  time.Now(),
		}),
	}).Create(assignment).Error
}

// Deactivate soft-deactivates the (userID, roleID) assignment. The row is
// retained for assignment history.
func (s *UserRoleStore) Deactivate(ctx context.Context, userID uint64, roleID uint) error {
	if s.db == nil {
		return ErrDBNil
	}

	result := s.db.WithContext(ctx).Model(&models.UserRole{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return authz.ErrAssignmentNotFound
	}

	return nil
}

var _ authz.UserRoleRepo = (*UserRoleStore)(nil)
