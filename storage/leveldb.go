package storage

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/silvermint/amt/digest"
)

// lengthKey stores the vector length. Digest keys are exactly 8
// bytes, so the longer key cannot collide.
var lengthKey = []byte("length")

// LevelDBVec is a Vec backed by a LevelDB database. Digests are
// stored under big-endian uint64 keys in their canonical 40-byte
// encoding. A RWMutex gives readers a shared lock that blocks writers
// for the duration of the read, and SetMany applies its updates in a
// single write batch, so readers never observe a half-applied update.
type LevelDBVec struct {
	mu     sync.RWMutex
	db     *leveldb.DB
	length uint64
	closed bool
}

// OpenLevelDBVec opens (or creates) a digest vector at the given
// path.
func OpenLevelDBVec(path string) (*LevelDBVec, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("opening digest vector at %q: %w", path, err)
	}
	v := &LevelDBVec{db: db}
	raw, err := db.Get(lengthKey, nil)
	switch {
	case err == leveldb.ErrNotFound:
		// fresh database, length zero
	case err != nil:
		_ = db.Close()
		return nil, fmt.Errorf("reading length of digest vector at %q: %w", path, err)
	default:
		v.length = binary.BigEndian.Uint64(raw)
	}
	return v, nil
}

func indexKey(index uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], index)
	return k[:]
}

func (v *LevelDBVec) Len() (uint64, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.closed {
		return 0, ErrClosed
	}
	return v.length, nil
}

func (v *LevelDBVec) Get(index uint64) (digest.Digest, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.get(index)
}

func (v *LevelDBVec) get(index uint64) (digest.Digest, error) {
	if v.closed {
		return digest.Digest{}, ErrClosed
	}
	if index >= v.length {
		return digest.Digest{}, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, v.length)
	}
	raw, err := v.db.Get(indexKey(index), nil)
	if err != nil {
		return digest.Digest{}, fmt.Errorf("reading index %d: %w", index, err)
	}
	return digest.FromBytes(raw)
}

func (v *LevelDBVec) GetMany(indices []uint64) ([]digest.Digest, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]digest.Digest, len(indices))
	for i, index := range indices {
		d, err := v.get(index)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func (v *LevelDBVec) Set(index uint64, d digest.Digest) error {
	return v.SetMany(map[uint64]digest.Digest{index: d})
}

func (v *LevelDBVec) SetMany(updates map[uint64]digest.Digest) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	batch := new(leveldb.Batch)
	for index, d := range updates {
		if index >= v.length {
			return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, v.length)
		}
		b := d.Bytes()
		batch.Put(indexKey(index), b[:])
	}
	if err := v.db.Write(batch, nil); err != nil {
		return fmt.Errorf("writing batch of %d updates: %w", len(updates), err)
	}
	return nil
}

func (v *LevelDBVec) Push(d digest.Digest) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	batch := new(leveldb.Batch)
	b := d.Bytes()
	batch.Put(indexKey(v.length), b[:])
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], v.length+1)
	batch.Put(lengthKey, lenBuf[:])
	if err := v.db.Write(batch, nil); err != nil {
		return fmt.Errorf("appending at index %d: %w", v.length, err)
	}
	v.length++
	return nil
}

func (v *LevelDBVec) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	v.closed = true
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], v.length)
	if err := v.db.Put(lengthKey, lenBuf[:], nil); err != nil {
		_ = v.db.Close()
		return fmt.Errorf("persisting length %d: %w", v.length, err)
	}
	return v.db.Close()
}
