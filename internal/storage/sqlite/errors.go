package sqlite

import "errors"

var (
	// ErrInvalidFavoriteID indicates an empty favorite id.
	ErrInvalidFavoriteID = errors.New("invalid favorite ID")
	// ErrClosed indicates use of a closed store.
	ErrClosed = errors.New("sqlite storage: closed")
)
