package domain

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrInvalidID = errors.New("invalid id")
	ErrMismatch  = errors.New("references do not match") // e.g. a payment for a booking of another bike
)
