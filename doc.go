// Package main provides the entry point for the education platform back
// office. It runs a web server using the Fiber framework that exposes the
// authorization API: login, permission resolution, menu navigation and the
// administration of roles, permissions and menus. The application uses gorm
// for data persistence.
package main
