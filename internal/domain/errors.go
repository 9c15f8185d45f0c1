// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist or is filtered out
// (soft-deleted, owned by someone else).
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a unique-key collision.
var ErrConflict = errors.New("conflict: resource already exists")

// ErrValidation indicates a request field is missing or malformed.
var ErrValidation = errors.New("validation failed")
