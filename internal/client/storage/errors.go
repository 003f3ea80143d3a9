package storage

import "errors"

// Common client storage errors
var (
	// ErrCursorNotFound indicates that no cursor was saved for the subscription
	ErrCursorNotFound = errors.New("cursor not found")

	// ErrTokenNotFound indicates that no access token is stored
	ErrTokenNotFound = errors.New("access token not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
