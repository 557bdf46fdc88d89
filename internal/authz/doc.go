// Package authz implements the authorization engine of the back office.
//
// The engine combines a role-to-permission graph, stateful user-role
// assignment, and an orthogonal subscription axis into a single composable
// allow/deny contract.
//
// # Data model
//
// Roles are bound one-to-one to fixed SystemRole values. Permissions belong
// to menus and carry globally unique resource.action keys. RolePermission
// rows form the role-to-permission edge set; UserRole rows couple users to
// roles with soft-delete semantics. A user's effective permission set is the
// union, over every active UserRole, of every active permission reachable
// through a granted edge. A role's permissions are exactly its explicit
// edges: there is no role hierarchy or inheritance.
//
// # Components
//
// Resolver answers the read-side questions (GetUserRoles,
// GetUserPermissions, HasPermission) and fails closed: store errors are
// logged and degrade to empty results, never to a grant.
//
// Administrator owns mutation: creating roles with permission sets,
// assigning and removing user roles (a single conditional upsert, idempotent
// under concurrency), and replacing a role's edge set atomically.
// Administrative failures surface as errors rather than being masked.
//
// # Gates
//
// A Gate is a predicate from (context, identity) to an allow/deny Decision.
// PermissionGate, RoleGate and SubscriptionGate cover the three axes; All
// combines them with logical AND. Require adapts a gate composition into
// Fiber middleware, mapping denial reasons to 401, 403 and 402:
//
//	app.Get("/api/admin/roles",
//	    authz.Require(authz.PermissionGate(resolver, authz.PermAdminRoles)),
//	    handler,
//	)
package authz
