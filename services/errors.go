package services

import "errors"

// Sentinel errors shared by the domain services. Controllers map them onto HTTP
// statuses with errors.Is.
var (
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("caller lacks the required role")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrDuplicateIdea     = errors.New("possible duplicate idea")
	ErrValidation        = errors.New("validation failed")
)
