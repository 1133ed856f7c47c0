package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure an operation returns wraps exactly one of
// these, so the delivery layer can map it to a status code with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrPersistence  = errors.New("persistence failure")
)

var (
	ErrOfferNotFound      = fmt.Errorf("%w: offer", ErrNotFound)
	ErrCounterNotFound    = fmt.Errorf("%w: counter", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
	ErrNotOpen            = fmt.Errorf("%w: record is no longer open", ErrConflict)
	ErrParentNotOpen      = fmt.Errorf("%w: parent offer is no longer open", ErrConflict)
	ErrNotOwner           = fmt.Errorf("%w: actor does not own this record", ErrUnauthorized)
	ErrWrongRole          = fmt.Errorf("%w: role not allowed for this action", ErrUnauthorized)
	ErrInvalidCredentials = errors.New("invalid username or password")
)
