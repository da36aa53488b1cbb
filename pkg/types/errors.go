package types

import "errors"

// Store operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrValidation    = errors.New("validation failed")
	ErrUnknownEntity = errors.New("unknown entity")
	ErrDecode        = errors.New("cannot decode entity values")
	ErrDuplicateID   = errors.New("duplicate entity ID")
)

// Entity method errors.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPasswordMismatch  = errors.New("password does not match")
)
