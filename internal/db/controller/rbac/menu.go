package rbac

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/GoEduAdmin/GoEduAdmin/internal/authz"
	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

// ErrMenuNotFound is returned when a menu is not found.
var ErrMenuNotFound = errors.New("menu not found")

// MenuStore implements authz.MenuRepo on top of GORM.
type MenuStore struct {
	db *gorm.DB
}

// NewMenuStore creates a menu store.
func NewMenuStore(db *gorm.DB) *MenuStore {
	return &MenuStore{db: db}
}

// ByID fetches a menu by its ID.
func (s *MenuStore) ByID(ctx context.Context, id uint) (*models.Menu, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var menu models.Menu

	result := s.db.WithContext(ctx).First(&menu, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}

		return nil, result.Error
	}

	return &menu, nil
}

// ListActive returns all active menus ordered by sort order.
func (s *MenuStore) ListActive(ctx context.Context) ([]models.Menu, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var menus []models.Menu

	result := s.db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order").Find(&menus)
	if result.Error != nil {
		return nil, result.Error
	}

	return menus, nil
}

// List returns all menus, active or not, ordered by sort order.
func (s *MenuStore) List(ctx context.Context) ([]models.Menu, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	var menus []models.Menu

	result := s.db.WithContext(ctx).Order("sort_order").Find(&menus)
	if result.Error != nil {
		return nil, result.Error
	}

	return menus, nil
}

// Create inserts a new menu. A non-root menu's parent must exist and be active.
func (s *MenuStore) Create(ctx context.Context, menu *models.Menu) error {
	if s.db == nil {
		return ErrDBNil
	}

	if menu.Name == "" {
		return ErrNameEmpty
	}

	if menu.ParentMenuID != nil {
		parent, err := s.ByID(ctx, *menu.ParentMenuID)
		if err != nil {
			return err
		}

		if !parent.IsActive {
			return ErrMenuNotFound
		}
	}

	return s.db.WithContext(ctx).Create(menu).Error
}

// Update persists changes to an existing menu.
func (s *MenuStore) Update(ctx context.Context, menu *models.Menu) error {
	if s.db == nil {
		return ErrDBNil
	}

	return s.db.WithContext(ctx).Save(menu).Error
}

// Deactivate soft-deactivates a menu. The row is retained.
func (s *MenuStore) Deactivate(ctx context.Context, id uint) error {
	if s.db == nil {
		return ErrDBNil
	}

	result := s.db.WithContext(ctx).Model(&models.Menu{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrMenuNotFound
	}

	return nil
}

var _ authz.MenuRepo = (*MenuStore)(nil)
