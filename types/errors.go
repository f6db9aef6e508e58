package types

import (
	"errors"
	"fmt"
)

var (
	// The price source could not be reached or answered with a non-success status.
	ErrRemoteUnavailable = errors.New("price source unavailable")
	// The price source answered, but the payload could not be turned into quotes.
	ErrMalformedData = errors.New("malformed price data")
	// No quotes match the requested day or block size.
	ErrNotFound = errors.New("no price data found")
)

// NotYetAvailableError is returned when tomorrow's prices are requested
// before they are published. Hour is the local hour after which to ask again.
type NotYetAvailableError struct {
	Hour int
}

func (e *NotYetAvailableError) Error() string {
	return fmt.Sprintf("prices for tomorrow are not available until after %02d:00", e.Hour)
}

// IsExpected reports whether err belongs to one of the classified failures.
func IsExpected(err error) bool {
	var nya *NotYetAvailableError
	return errors.Is(err, ErrRemoteUnavailable) ||
		errors.Is(err, ErrMalformedData) ||
		errors.Is(err, ErrNotFound) ||
		errors.As(err, &nya)
}
