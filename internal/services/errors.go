package services

import "errors"

var (
	// ErrNotFound is returned when the target record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrInvalidInput is returned when a request is rejected before any
	// state change
	ErrInvalidInput = errors.New("invalid input")
)
