package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist — or exists but belongs to a different user.
// Ownership mismatches are deliberately indistinguishable from absence so
// the API never leaks the existence of other users' baskets.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. blank basket name, malformed custom slug).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when an operation contradicts current basket state:
// adding an item that is already a member, or deleting a default basket.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")
