// Package digest defines the fixed-length hash output type shared by
// the hash primitives and the Merkle tree.
package digest

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/silvermint/amt/bfield"
)

// Len is the number of field elements in a digest.
const Len = 5

// Size is the length of the canonical byte encoding.
const Size = Len * 8

var ErrInvalidLength = errors.New("invalid digest encoding length")

// Digest is a hash output of exactly Len field elements. It is a value
// type: copy freely, never mutate in place.
type Digest [Len]bfield.Element

// New constructs a digest from its elements.
func New(e0, e1, e2, e3, e4 bfield.Element) Digest {
	return Digest{e0, e1, e2, e3, e4}
}

// FromUint64s constructs a digest from canonical values.
func FromUint64s(vs [Len]uint64) Digest {
	var d Digest
	for i, v := range vs {
		d[i] = bfield.New(v)
	}
	return d
}

// Values returns the canonical values of the digest's elements.
func (d Digest) Values() [Len]uint64 {
	var vs [Len]uint64
	for i, e := range d {
		vs[i] = e.Value()
	}
	return vs
}

// Equal reports element-wise equality.
func (d Digest) Equal(other Digest) bool {
	for i := range d {
		if !d[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Bytes returns the canonical encoding: each element's canonical value
// as a little-endian uint64, in order.
func (d Digest) Bytes() [Size]byte {
	var b [Size]byte
	for i, e := range d {
		binary.LittleEndian.PutUint64(b[i*8:], e.Value())
	}
	return b
}

// FromBytes decodes a canonical encoding produced by Bytes. Values at
// or above the field modulus are rejected.
func FromBytes(b []byte) (Digest, error) {
	if len(b) != Size {
		return Digest{}, fmt.Errorf("%w: got %d, want %d", ErrInvalidLength, len(b), Size)
	}
	var d Digest
	for i := 0; i < Len; i++ {
		v := binary.LittleEndian.Uint64(b[i*8:])
		if v >= bfield.Modulus {
			return Digest{}, fmt.Errorf("digest element %d out of field range: %d", i, v)
		}
		d[i] = bfield.New(v)
	}
	return d, nil
}

// String returns the hexadecimal canonical encoding.
func (d Digest) String() string {
	b := d.Bytes()
	return hex.EncodeToString(b[:])
}
