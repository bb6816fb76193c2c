package content

import "errors"

var (
	// ErrInvalidPath is returned for segment lists that cannot address a store entry.
	ErrInvalidPath = errors.New("invalid content path")

	// ErrNotDirectory is returned by Walk when the target exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)
