package core

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the engine. Callers classify failures with
// errors.Is against these three sentinels; everything more specific wraps
// one of them.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence error")
)

var (
	ErrInvalidAmount   = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInvalidDate     = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidType     = fmt.Errorf("%w: invalid type", ErrValidation)
	ErrEmptyCategory   = fmt.Errorf("%w: empty category", ErrValidation)
	ErrEmptyTitle      = fmt.Errorf("%w: empty title", ErrValidation)
	ErrEmptyName       = fmt.Errorf("%w: empty name", ErrValidation)
	ErrNonPositive     = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrLongDescription = fmt.Errorf("%w: description too long (max 200 characters)", ErrValidation)
)
