// Package lsm wraps Pebble (CockroachDB's LSM storage engine) behind the
// index.Index interface so it can be benchmarked next to the in-memory
// trees. The store lives on an in-memory file system and is discarded on
// Close.
package lsm

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"go.uber.org/zap"

	"github.com/gosella/DS/index"
)

var _ index.Index = (*LSM)(nil)

type LSM struct {
	db *pebble.DB
}

// Open creates an empty Pebble store on a fresh in-memory file system.
// Pebble's own event logging goes to log.
func Open(log *zap.SugaredLogger) (*LSM, error) {
	opts := &pebble.Options{
		FS:     vfs.NewMem(),
		Logger: log,
		// Keep memtables small so the benchmark exercises flushes and
		// compactions at modest scales.
		MemTableSize:                16 << 20,
		MemTableStopWritesThreshold: 4,
		L0CompactionThreshold:       4,
		L0StopWritesThreshold:       12,
	}

	db, err := pebble.Open("", opts)
	if err != nil {
		return nil, errors.Wrap(err, "lsm: open")
	}
	return &LSM{db: db}, nil
}

func (l *LSM) Close() error {
	return errors.Wrap(l.db.Close(), "lsm: close")
}

// Insert inserts or updates the value for key.
func (l *LSM) Insert(key int64, value []byte) error {
	return errors.Wrap(l.db.Set(encodeKey(key), value, pebble.NoSync), "lsm: insert")
}

func (l *LSM) Get(key int64) ([]byte, error) {
	val, closer, err := l.db.Get(encodeKey(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, errors.Wrapf(index.ErrNotFound, "lsm: key %d", key)
	}
	if err != nil {
		return nil, errors.Wrap(err, "lsm: get")
	}
	// val is only valid until closer.Close().
	result := make([]byte, len(val))
	copy(result, val)
	if err := closer.Close(); err != nil {
		return nil, errors.Wrap(err, "lsm: get")
	}
	return result, nil
}

// Delete removes key. Pebble deletes are blind tombstones, so a lookup runs
// first to report absent keys the way the other indexes do.
func (l *LSM) Delete(key int64) error {
	k := encodeKey(key)
	_, closer, err := l.db.Get(k)
	if errors.Is(err, pebble.ErrNotFound) {
		return errors.Wrapf(index.ErrNotFound, "lsm: key %d", key)
	}
	if err != nil {
		return errors.Wrap(err, "lsm: delete")
	}
	if err := closer.Close(); err != nil {
		return errors.Wrap(err, "lsm: delete")
	}
	return errors.Wrap(l.db.Delete(k, pebble.NoSync), "lsm: delete")
}

// Scan returns an iterator over every key in order.
func (l *LSM) Scan() (index.Iterator, error) {
	iter, err := l.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "lsm: scan")
	}
	iter.First()
	return &scanIterator{iter: iter, first: true}, nil
}

// encodeKey encodes an int64 as a big-endian 8-byte slice with the sign bit
// flipped, so that byte order matches numeric order for negative keys too.
func encodeKey(k int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(k)^(1<<63))
	return b
}

func decodeKey(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b) ^ (1 << 63))
}

type scanIterator struct {
	iter  *pebble.Iterator
	first bool
	key   int64
	val   []byte
	err   error
}

func (it *scanIterator) Next() bool {
	var valid bool
	if it.first {
		// First() was already called in Scan.
		it.first = false
		valid = it.iter.Valid()
	} else {
		valid = it.iter.Next()
	}
	if !valid {
		if err := it.iter.Error(); err != nil {
			it.err = errors.Wrap(err, "lsm: scan")
		}
		return false
	}
	k := it.iter.Key()
	if len(k) != 8 {
		it.err = errors.Newf("lsm: unexpected key length %d", len(k))
		return false
	}
	it.key = decodeKey(k)
	// Pebble reuses the value buffer on Next.
	v := it.iter.Value()
	it.val = make([]byte, len(v))
	copy(it.val, v)
	return true
}

func (it *scanIterator) Key() int64    { return it.key }
func (it *scanIterator) Value() []byte { return it.val }
func (it *scanIterator) Error() error  { return it.err }
func (it *scanIterator) Close() error  { return it.iter.Close() }
