package domain

import (
	"errors"
	"fmt"
)

// ErrScriptNotFound is returned by the script store when a named script is absent.
var ErrScriptNotFound = errors.New("script not found")

// ValidationError reports rejected input before any side effect occurs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SavedScript is a named script persisted as one file under the store root.
// Identity is the name; saving over an existing name overwrites it.
type SavedScript struct {
	Name string
	Body string
}
