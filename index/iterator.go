package index

// Iterator walks entries in key order. Next must be called before the first
// Key or Value.
type Iterator interface {
	Next() bool
	Key() int64
	Value() []byte
	Error() error
	Close() error
}
