package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by every lookup failure.
	ErrNotFound = errors.New("implementation not found")
	// ErrInvalidConfig is wrapped by construction failures.
	ErrInvalidConfig = errors.New("invalid registry configuration")
)

// NotFoundError reports a lookup that found neither an entry nor a fallback.
type NotFoundError struct {
	Key   any  // requested key; nil for Latest and Random
	Empty bool // the registry had no entries at all
}

func (e *NotFoundError) Error() string {
	if e.Empty {
		return "registry is empty and has no default implementation"
	}
	return fmt.Sprintf("no implementation registered for key %v", e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
