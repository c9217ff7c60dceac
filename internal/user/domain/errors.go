package domain

import "errors"

// Error kinds raised by the core. The transport layer maps these to status
// codes; the core itself never deals in HTTP concerns.
var (
	// ErrValidation covers malformed or conflicting input, such as a
	// duplicate email or a missing id on edit.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means a referenced user or token does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrAuthentication covers bad credentials, invalid signatures,
	// expired tokens and subject mismatches.
	ErrAuthentication = errors.New("authentication failed")
)
