package loader

import (
	"errors"
	"fmt"
)

// ErrUnreadableSchema marks a block whose columns match no known layout.
var ErrUnreadableSchema = errors.New("unreadable schema")

// EventUnavailableError reports why an event contributed no results.
type EventUnavailableError struct {
	Event string
	Cause error
}

func (e *EventUnavailableError) Error() string {
	return fmt.Sprintf("event %q unavailable: %v", e.Event, e.Cause)
}

func (e *EventUnavailableError) Unwrap() error {
	return e.Cause
}
