// Package index defines the interface shared by every ordered index the
// benchmark drives.
package index

import "github.com/cockroachdb/errors"

// ErrNotFound marks errors returned for absent keys. Implementations may wrap
// or mark their own not-found errors with it; callers test with errors.Is.
var ErrNotFound = errors.New("index: key not found")

// Index is the common interface for all implementations. Keys are unique.
type Index interface {
	// Insert stores value under key, overwriting any previous value.
	Insert(key int64, value []byte) error
	Get(key int64) ([]byte, error)
	Delete(key int64) error
	// Scan walks every entry in ascending key order.
	Scan() (Iterator, error)
	Close() error
}
