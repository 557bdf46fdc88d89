package authz

import (
	"context"
	"errors"

	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

// errStore is a generic failure injected by the fakes.
var errStore = errors.New("store unavailable")

type fakeRoleRepo struct {
	roles map[uint]*models.Role
	fail  bool
}

func newFakeRoleRepo(roles ...*models.Role) *fakeRoleRepo {
	repo := &fakeRoleRepo{roles: make(map[uint]*models.Role)}
	for _, role := range roles {
		repo.roles[role.ID] = role
	}

	return repo
}

func (f *fakeRoleRepo) ByID(_ context.Context, id uint) (*models.Role, error) {
	if f.fail {
		return nil, errStore
	}

	role, ok := f.roles[id]
	if !ok {
		return nil, ErrRoleNotFound
	}

	return role, nil
}

func (f *fakeRoleRepo) BySystemRole(_ context.Context, systemRole models.SystemRole) (*models.Role, error) {
	if f.fail {
		return nil, errStore
	}

	for _, role := range f.roles {
		if role.SystemRole == systemRole {
			return role, nil
		}
	}

	return nil, ErrRoleNotFound
}

func (f *fakeRoleRepo) List(_ context.Context) ([]models.Role, error) {
	if f.fail {
		return nil, errStore
	}

	out := make([]models.Role, 0, len(f.roles))
	for _, role := range f.roles {
		out = append(out, *role)
	}

	return out, nil
}

func (f *fakeRoleRepo) Create(_ context.Context, role *models.Role) error {
	if f.fail {
		return errStore
	}

	role.ID = uint(len(f.roles) + 1)
	f.roles[role.ID] = role

	return nil
}

func (f *fakeRoleRepo) Update(_ context.Context, role *models.Role) error {
	if f.fail {
		return errStore
	}

	f.roles[role.ID] = role

	return nil
}

func (f *fakeRoleRepo) Deactivate(_ context.Context, id uint) error {
	role, ok := f.roles[id]
	if !ok {
		return ErrRoleNotFound
	}

	role.IsActive = false

	return nil
}

type fakePermissionRepo struct {
	byKey   map[string]*models.Permission
	granted map[uint64][]models.Permission
	fail    bool
}

func newFakePermissionRepo(permissions ...*models.Permission) *fakePermissionRepo {
	repo := &fakePermissionRepo{
		byKey:   make(map[string]*models.Permission),
		granted: make(map[uint64][]models.Permission),
	}
	for _, permission := range permissions {
		repo.byKey[permission.PermissionKey] = permission
	}

	return repo
}

func (f *fakePermissionRepo) grant(userID uint64, keys ...string) {
	for _, key := range keys {
		f.granted[userID] = append(f.granted[userID], *f.byKey[key])
	}
}

func (f *fakePermissionRepo) ByKey(_ context.Context, key string) (*models.Permission, error) {
	if f.fail {
		return nil, errStore
	}

	permission, ok := f.byKey[key]
	if !ok {
		return nil, ErrPermissionNotFound
	}

	return permission, nil
}

func (f *fakePermissionRepo) List(_ context.Context) ([]models.Permission, error) {
	if f.fail {
		return nil, errStore
	}

	out := make([]models.Permission, 0, len(f.byKey))
	for _, permission := range f.byKey {
		out = append(out, *permission)
	}

	return out, nil
}

func (f *fakePermissionRepo) Create(_ context.Context, permission *models.Permission) error {
	if f.fail {
		return errStore
	}

	permission.ID = uint(len(f.byKey) + 1)
	f.byKey[permission.PermissionKey] = permission

	return nil
}

func (f *fakePermissionRepo) SetActive(_ context.Context, id uint, active bool) error {
	for _, permission := range f.byKey {
		if permission.ID == id {
			permission.IsActive = active
			return nil
		}
	}

	return ErrPermissionNotFound
}

func (f *fakePermissionRepo) ActiveGrantedByUser(_ context.Context, userID uint64) ([]models.Permission, error) {
	if f.fail {
		return nil, errStore
	}

	return f.granted[userID], nil
}

type fakeUserRoleRepo struct {
	assignments map[uint64][]models.UserRole
	fail        bool
	upserts     []models.UserRole
}

func newFakeUserRoleRepo() *fakeUserRoleRepo {
	return &fakeUserRoleRepo{assignments: make(map[uint64][]models.UserRole)}
}

func (f *fakeUserRoleRepo) assign(userID uint64, role models.Role, active bool) {
	f.assignments[userID] = append(f.assignments[userID], models.UserRole{
		UserID:   userID,
		RoleID:   role.ID,
		IsActive: active,
		Role:     role,
	})
}

func (f *fakeUserRoleRepo) ActiveByUser(_ context.Context, userID uint64) ([]models.UserRole, error) {
	if f.fail {
		return nil, errStore
	}

	var active []models.UserRole
	for _, assignment := range f.assignments[userID] {
		if assignment.IsActive {
			active = append(active, assignment)
		}
	}

	return active, nil
}

func (f *fakeUserRoleRepo) Upsert(_ context.Context, assignment *models.UserRole) error {
	if f.fail {
		return errStore
	}

	f.upserts = append(f.upserts, *assignment)

	for i, existing := range f.assignments[assignment.UserID] {
		if existing.RoleID == assignment.RoleID {
			f.assignments[assignment.UserID][i].IsActive = true
			return nil
		}
	}

	f.assignments[assignment.UserID] = append(f.assignments[assignment.UserID], *assignment)

	return nil
}

func (f *fakeUserRoleRepo) Deactivate(_ context.Context, userID uint64, roleID uint) error {
	if f.fail {
		return errStore
	}

	for i, existing := range f.assignments[userID] {
		if existing.RoleID == roleID && existing.IsActive {
			f.assignments[userID][i].IsActive = false
			return nil
		}
	}

	return ErrAssignmentNotFound
}

type fakeRolePermissionRepo struct {
	edges map[uint][]models.RolePermission
	fail  bool
}

func newFakeRolePermissionRepo() *fakeRolePermissionRepo {
	return &fakeRolePermissionRepo{edges: make(map[uint][]models.RolePermission)}
}

func (f *fakeRolePermissionRepo) ByRole(_ context.Context, roleID uint) ([]models.RolePermission, error) {
	if f.fail {
		return nil, errStore
	}

	return f.edges[roleID], nil
}

func (f *fakeRolePermissionRepo) Replace(_ context.Context, roleID uint, permissionIDs []uint, grantedBy string) error {
	if f.fail {
		return errStore
	}

	f.edges[roleID] = nil

	return f.Grant(context.Background(), roleID, permissionIDs, grantedBy)
}

func (f *fakeRolePermissionRepo) Grant(_ context.Context, roleID uint, permissionIDs []uint, grantedBy string) error {
	if f.fail {
		return errStore
	}

	for _, permissionID := range permissionIDs {
		f.edges[roleID] = append(f.edges[roleID], models.RolePermission{
			RoleID:       roleID,
			PermissionID: permissionID,
			IsGranted:    true,
			GrantedBy:    grantedBy,
		})
	}

	return nil
}

type fakeSubscriptionService struct {
	current SubscriptionType
	active  bool
	err     error
}

func (f *fakeSubscriptionService) ActiveSubscription(_ context.Context, _ uint64) (SubscriptionType, bool, error) {
	return f.current, f.active, f.err
}
