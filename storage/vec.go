// Package storage provides persistent and in-memory vectors of
// digests, used to hold leaf sets that outlive a process. The tree
// itself always builds in memory; this package is only the
// digest/array source feeding it.
package storage

import (
	"errors"
	"fmt"

	"github.com/silvermint/amt/digest"
)

var (
	ErrIndexOutOfRange = errors.New("storage: index out of range")
	ErrClosed          = errors.New("storage: vector is closed")
)

// Vec is an indexable, growable sequence of digests. Implementations
// must allow concurrent readers; writes are exclusive.
type Vec interface {
	// Len returns the number of stored digests.
	Len() (uint64, error)
	// Get returns the digest at the given index.
	Get(index uint64) (digest.Digest, error)
	// Set overwrites the digest at the given index.
	Set(index uint64, d digest.Digest) error
	// SetMany overwrites several indices atomically with respect to
	// readers.
	SetMany(updates map[uint64]digest.Digest) error
	// GetMany returns the digests at the given indices, in argument
	// order.
	GetMany(indices []uint64) ([]digest.Digest, error)
	// Push appends a digest.
	Push(d digest.Digest) error
	// Close releases underlying resources.
	Close() error
}

// All reads every digest out of a vector in index order, for handing
// a persisted leaf set to the tree builder.
func All(v Vec) ([]digest.Digest, error) {
	n, err := v.Len()
	if err != nil {
		return nil, err
	}
	out := make([]digest.Digest, 0, n)
	for i := uint64(0); i < n; i++ {
		d, err := v.Get(i)
		if err != nil {
			return nil, fmt.Errorf("reading index %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}
