// Package repository defines the data access layer.  This file holds error
// sentinels reused across repositories so that handlers can map failure
// scenarios to HTTP responses: ErrForbidden becomes 403, ErrConflict 409
// (scheduling clashes), ErrNotFound 404.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource belonging to a different tenant or user.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, most importantly a booking or blackout already
// occupying the requested slot.
var ErrConflict = errors.New("conflict")

// ErrNotFound is returned when the addressed row does not exist within the
// caller's tenant.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registering a user with a taken email.
var ErrEmailExists = errors.New("email already exists")
