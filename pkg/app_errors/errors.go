package apperrors

import "errors"

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrVenueNotFound         = errors.New("venue not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)
