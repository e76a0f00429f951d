package errors

import (
	"errors"
)

var (
	ErrEmptyAuth       = errors.New("missing authorization")
	ErrTokenInvalid    = errors.New("invalid token")
	ErrMissingSession  = errors.New("missing session")
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidPhone    = errors.New("phone number must have exactly 10 digits")
	ErrNotReviewing    = errors.New("checkout attempt is not in reviewing state")
	ErrSubmitInFlight  = errors.New("a submission is already in flight")
)
