package avl

import "github.com/cockroachdb/errors"

var (
	// ErrKeyNotFound is returned by Get and Delete when the key is absent.
	ErrKeyNotFound = errors.New("avl: key not found")

	// ErrOutOfRange is returned when a cursor steps past the end of the tree or
	// before its first element. Dereferencing End panics with an error wrapping it.
	ErrOutOfRange = errors.New("avl: cursor out of range")

	// ErrInvalidCursor reports a zero cursor, a cursor belonging to another tree
	// or a cursor whose node has been erased.
	ErrInvalidCursor = errors.New("avl: invalid cursor")

	// ErrCorrupt is wrapped by every error returned from Verify.
	ErrCorrupt = errors.New("avl: corrupt tree")
)
