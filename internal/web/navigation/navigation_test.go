package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

func menu(id uint, name string, parent *uint, sortOrder int, active bool) models.Menu {
	return models.Menu{
		ID:           id,
		Name:         name,
		DisplayName:  name,
		ParentMenuID: parent,
		SortOrder:    sortOrder,
		IsActive:     active,
	}
}

func permission(id, menuID uint, key string) models.Permission {
	return models.Permission{
		ID:            id,
		MenuID:        menuID,
		PermissionKey: key,
		IsActive:      true,
	}
}

func uintPtr(v uint) *uint {
	return &v
}

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Menu.Name)
	}

	return out
}

func TestBuildTree(t *testing.T) {
	menus := []models.Menu{
		menu(1, "dashboard", nil, 2, true),
		menu(2, "students", nil, 1, true),
		menu(3, "students.list", uintPtr(2), 2, true),
		menu(4, "students.import", uintPtr(2), 1, true),
	}
	permissions := []models.Permission{
		permission(1, 1, "dashboard.view"),
		permission(2, 3, "students.view"),
	}

	roots := BuildTree(menus, permissions)

	require.Len(t, roots, 2)

	// roots ordered by SortOrder
	assert.Equal(t, []string{"students", "dashboard"}, names(roots))

	// children attached and ordered
	students := roots[0]
	require.Len(t, students.Children, 2)
	assert.Equal(t, []string{"students.import", "students.list"}, names(students.Children))

	// permission keys attached to their menus
	assert.Equal(t, []string{"students.view"}, students.Children[1].PermissionKeys)
	assert.Empty(t, students.PermissionKeys)
}

func TestBuildTree_SkipsInactiveMenus(t *testing.T) {
	menus := []models.Menu{
		menu(1, "active", nil, 1, true),
		menu(2, "inactive", nil, 2, false),
	}

	roots := BuildTree(menus, nil)

	require.Len(t, roots, 1)
	assert.Equal(t, "active", roots[0].Menu.Name)
}

func TestBuildTree_DropsChildrenOfInactiveParent(t *testing.T) {
	menus := []models.Menu{
		menu(1, "parent", nil, 1, false),
		menu(2, "child", uintPtr(1), 1, true),
	}

	roots := BuildTree(menus, nil)

	// The child cannot legally appear without its parent.
	assert.Empty(t, roots)
}

func TestBuildTree_DropsOrphans(t *testing.T) {
	menus := []models.Menu{
		menu(1, "root", nil, 1, true),
		menu(2, "orphan", uintPtr(99), 1, true),
	}

	roots := BuildTree(menus, nil)

	require.Len(t, roots, 1)
	assert.Equal(t, "root", roots[0].Menu.Name)
}

func TestBuildTree_DropsCycles(t *testing.T) {
	// a -> b -> a, never reachable from any root
	menus := []models.Menu{
		menu(1, "root", nil, 1, true),
		menu(2, "a", uintPtr(3), 1, true),
		menu(3, "b", uintPtr(2), 1, true),
	}

	roots := BuildTree(menus, nil)

	require.Len(t, roots, 1)
	assert.Equal(t, "root", roots[0].Menu.Name)
	assert.Empty(t, roots[0].Children)
}

func TestBuildTree_IgnoresPermissionsOfUnknownMenus(t *testing.T) {
	menus := []models.Menu{
		menu(1, "root", nil, 1, true),
	}
	permissions := []models.Permission{
		permission(1, 42, "ghost.view"),
	}

	roots := BuildTree(menus, permissions)

	require.Len(t, roots, 1)
	assert.Empty(t, roots[0].PermissionKeys)
}

func TestFilterByPermissions(t *testing.T) {
	// root -> {a -> {a1, a2}, b}
	menus := []models.Menu{
		menu(1, "root", nil, 1, true),
		menu(2, "a", uintPtr(1), 1, true),
		menu(3, "b", uintPtr(1), 2, true),
		menu(4, "a1", uintPtr(2), 1, true),
		menu(5, "a2", uintPtr(2), 2, true),
	}
	permissions := []models.Permission{
		permission(1, 4, "a1.view"),
		permission(2, 5, "a2.view"),
		permission(3, 3, "b.view"),
	}

	tree := BuildTree(menus, permissions)
	require.Len(t, tree, 1)

	testCases := []struct {
		name     string
		granted  []string
		expected func(t *testing.T, roots []*Node)
	}{
		{
			name:    "no grants prunes everything",
			granted: nil,
			expected: func(t *testing.T, roots []*Node) {
				assert.Empty(t, roots)
			},
		},
		{
			name:    "leaf grant keeps its ancestor chain only",
			granted: []string{"a1.view"},
			expected: func(t *testing.T, roots []*Node) {
				require.Len(t, roots, 1)
				root := roots[0]
				require.Len(t, root.Children, 1)
				a := root.Children[0]
				assert.Equal(t, "a", a.Menu.Name)
				require.Len(t, a.Children, 1)
				assert.Equal(t, "a1", a.Children[0].Menu.Name)
			},
		},
		{
			name:    "sibling grant does not leak the other branch",
			granted: []string{"b.view"},
			expected: func(t *testing.T, roots []*Node) {
				require.Len(t, roots, 1)
				require.Len(t, roots[0].Children, 1)
				assert.Equal(t, "b", roots[0].Children[0].Menu.Name)
			},
		},
		{
			name:    "all grants keep the full tree",
			granted: []string{"a1.view", "a2.view", "b.view"},
			expected: func(t *testing.T, roots []*Node) {
				require.Len(t, roots, 1)
				require.Len(t, roots[0].Children, 2)
				a := roots[0].Children[0]
				assert.Len(t, a.Children, 2)
			},
		},
		{
			name:    "unknown keys grant nothing",
			granted: []string{"other.view"},
			expected: func(t *testing.T, roots []*Node) {
				assert.Empty(t, roots)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.expected(t, FilterByPermissions(tree, tc.granted))
		})
	}
}

func TestFilterByPermissions_DoesNotMutateInput(t *testing.T) {
	menus := []models.Menu{
		menu(1, "root", nil, 1, true),
		menu(2, "child", uintPtr(1), 1, true),
	}
	permissions := []models.Permission{
		permission(1, 2, "child.view"),
	}

	tree := BuildTree(menus, permissions)

	_ = FilterByPermissions(tree, nil)

	require.Len(t, tree, 1)
	assert.Len(t, tree[0].Children, 1)
}
