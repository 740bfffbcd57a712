// Package sentinel holds the errors stores return. Services map them to
// domain errors at their boundary and nowhere else.
package sentinel

import "errors"

var (
	// ErrNotFound means the row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyUsed means a unique key is taken, such as a second purchase
	// of one episode.
	ErrAlreadyUsed = errors.New("already used")
	// ErrConflict means a versioned write lost a race.
	ErrConflict = errors.New("conflict")
)
