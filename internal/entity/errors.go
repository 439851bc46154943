package entity

import (
	"errors"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrUnsupportedCurrency    = errors.New("unsupported currency")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrUnauthenticated        = errors.New("unauthenticated")
	ErrForbidden              = errors.New("forbidden")
)
