package auth

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserEmailExists is returned when attempting to create a user with an email that already exists.
	ErrUserEmailExists = errors.New("user with email already exists")

	// ErrSigningKeyEmpty is returned when the token signing key is not configured.
	ErrSigningKeyEmpty = errors.New("token signing key cannot be empty")

	// ErrInvalidToken is returned when a token fails signature, issuer,
	// audience or expiry validation.
	ErrInvalidToken = errors.New("invalid token")
)
