// Package uniuri generates cryptographically secure random strings, used
// for one-time secrets such as the seeded administrator password.
package uniuri
