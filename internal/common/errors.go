// Package common defines shared sentinel errors used across the taskkeeper
// core. Callers should match these values with errors.Is; layers attach
// context via fmt.Errorf("...: %w", err) without breaking matching.
package common

import "errors"

var (
	// Account errors.
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUnknownUsername   = errors.New("unknown username")

	// Credential errors.
	ErrWrongPassword = errors.New("wrong password")

	// Session errors.
	ErrNoActiveSession = errors.New("no user is logged in")

	// Task errors.
	ErrTaskNotFound = errors.New("task not found")

	// Persistence errors.
	ErrMalformedStoreFile = errors.New("malformed store file")
	ErrStorageIO          = errors.New("storage i/o failure")
)
