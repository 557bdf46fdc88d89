// Package navigation builds the hierarchical menu tree of the back office and
// prunes it to the entries a user is allowed to act on.
//
// Building and filtering are pure computations over an in-memory snapshot of
// menus and permissions; they perform no I/O and are safe to run concurrently.
package navigation

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/GoEduAdmin/GoEduAdmin/internal/db/models"
)

// Node is one menu entry in the built tree together with the permission keys
// directly associated with it and its ordered children.
type Node struct {
	Menu           models.Menu `json:"menu"`
	PermissionKeys []string    `json:"permissionKeys,omitempty"`
	Children       []*Node     `json:"children,omitempty"`
}

// BuildTree builds the menu hierarchy from a flat snapshot of menus and the
// permissions owned by them. Inactive menus are skipped. Menus whose parent is
// missing, inactive, or part of a reference cycle are dropped and logged; they
// can never legally appear in the tree. Siblings are ordered by SortOrder at
// every level.
func BuildTree(menus []models.Menu, permissions []models.Permission) []*Node {
	// Index the snapshot once; all traversal below is index lookups.
	nodes := make(map[uint]*Node, len(menus))
	childIDs := make(map[uint][]uint, len(menus))
	rootIDs := make([]uint, 0)

	for _, menu := range menus {
		if !menu.IsActive {
			continue
		}

		nodes[menu.ID] = &Node{Menu: menu}
	}

	for _, permission := range permissions {
		node, ok := nodes[permission.MenuID]
		if !ok {
			continue
		}

		node.PermissionKeys = append(node.PermissionKeys, permission.PermissionKey)
	}

	for id, node := range nodes {
		parentID := node.Menu.ParentMenuID
		if parentID == nil {
			rootIDs = append(rootIDs, id)
			continue
		}

		if _, ok := nodes[*parentID]; !ok {
			log.Warn().Uint("menu_id", id).Uint("parent_id", *parentID).
				Msg("menu parent missing or inactive, dropping subtree")

			continue
		}

		childIDs[*parentID] = append(childIDs[*parentID], id)
	}

	// Attach children walking down from the roots. Nodes with a parent that
	// are never reached sit on a cycle.
	reached := make(map[uint]bool, len(nodes))

	var attach func(id uint) *Node
	attach = func(id uint) *Node {
		node := nodes[id]
		reached[id] = true

		ids := childIDs[id]
		sortByOrder(ids, nodes)

		for _, childID := range ids {
			node.Children = append(node.Children, attach(childID))
		}

		return node
	}

	sortByOrder(rootIDs, nodes)

	roots := make([]*Node, 0, len(rootIDs))
	for _, id := range rootIDs {
		roots = append(roots, attach(id))
	}

	for id := range nodes {
		if !reached[id] && nodes[id].Menu.ParentMenuID != nil {
			if _, hasParent := nodes[*nodes[id].Menu.ParentMenuID]; hasParent {
				log.Warn().Uint("menu_id", id).Msg("menu sits on a parent cycle, dropped")
			}
		}
	}

	return roots
}

// FilterByPermissions returns the subtree of the built tree a holder of the
// given permission keys may see. A node is retained iff it carries at least
// one of the keys directly, or at least one of its children survives. A
// parent with no direct grant and no surviving children is pruned entirely,
// never shown as an empty group.
func FilterByPermissions(roots []*Node, permissionKeys []string) []*Node {
	granted := make(map[string]bool, len(permissionKeys))
	for _, key := range permissionKeys {
		granted[key] = true
	}

	return filterNodes(roots, granted)
}

func filterNodes(nodes []*Node, granted map[string]bool) []*Node {
	var kept []*Node

	for _, node := range nodes {
		children := filterNodes(node.Children, granted)

		if !hasDirectGrant(node, granted) && len(children) == 0 {
			continue
		}

		kept = append(kept, &Node{
			Menu:           node.Menu,
			PermissionKeys: node.PermissionKeys,
			Children:       children,
		})
	}

	return kept
}

func hasDirectGrant(node *Node, granted map[string]bool) bool {
	for _, key := range node.PermissionKeys {
		if granted[key] {
			return true
		}
	}

	return false
}

// sortByOrder orders sibling menu IDs by SortOrder, falling back to ID for a
// stable order between equal siblings.
func sortByOrder(ids []uint, nodes map[uint]*Node) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := nodes[ids[i]].Menu, nodes[ids[j]].Menu
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}

		return a.ID < b.ID
	})
}
