package domain

import "errors"

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrFlightNotFound    = errors.New("flight not found")
	ErrValidation        = errors.New("invalid booking request")
	ErrInvalidMultiplier = errors.New("price multiplier must be positive")
	ErrCodeExhausted     = errors.New("could not allocate a unique booking code")
)
