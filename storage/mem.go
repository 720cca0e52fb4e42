package storage

import (
	"fmt"
	"sync"

	"github.com/silvermint/amt/digest"
)

// MemVec is an in-memory Vec, mainly for tests and for callers that
// do not need persistence.
type MemVec struct {
	mu      sync.RWMutex
	digests []digest.Digest
}

// NewMemVec returns an empty in-memory vector.
func NewMemVec() *MemVec {
	return &MemVec{}
}

func (v *MemVec) Len() (uint64, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return uint64(len(v.digests)), nil
}

func (v *MemVec) Get(index uint64) (digest.Digest, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if index >= uint64(len(v.digests)) {
		return digest.Digest{}, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, len(v.digests))
	}
	return v.digests[index], nil
}

func (v *MemVec) GetMany(indices []uint64) ([]digest.Digest, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]digest.Digest, len(indices))
	for i, index := range indices {
		if index >= uint64(len(v.digests)) {
			return nil, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, len(v.digests))
		}
		out[i] = v.digests[index]
	}
	return out, nil
}

func (v *MemVec) Set(index uint64, d digest.Digest) error {
	return v.SetMany(map[uint64]digest.Digest{index: d})
}

func (v *MemVec) SetMany(updates map[uint64]digest.Digest) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for index := range updates {
		if index >= uint64(len(v.digests)) {
			return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, len(v.digests))
		}
	}
	for index, d := range updates {
		v.digests[index] = d
	}
	return nil
}

func (v *MemVec) Push(d digest.Digest) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.digests = append(v.digests, d)
	return nil
}

func (v *MemVec) Close() error {
	return nil
}
