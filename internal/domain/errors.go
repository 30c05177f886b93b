// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness conflict surfaced by the store.
var ErrConflict = errors.New("conflict: resource already exists")

// ErrValidation indicates invalid caller input. Wrapping errors carry
// the offending field or constraint in their message.
var ErrValidation = errors.New("validation failed")

// ErrForbidden indicates the entity exists but belongs to another user.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthenticated indicates the request carries no valid caller identity.
var ErrUnauthenticated = errors.New("unauthenticated")
