// Package bfield implements arithmetic in the prime field of order
// p = 2^64 - 2^32 + 1.
//
// Elements are stored as a single Montgomery limb with R = 2^64 mod p.
// The limb is not necessarily the canonical residue; Value reduces to
// [0, p). Hash primitives built on top of this package substitute and
// shift the raw limb directly, so the exact limb-level behaviour of
// every operation here is load-bearing, not an implementation detail.
package bfield

import (
	"fmt"
	"math/bits"
)

// Modulus is the field's prime p = 2^64 - 2^32 + 1.
const Modulus uint64 = 0xFFFFFFFF00000001

// rSquared is R^2 mod p, used to enter Montgomery form.
const rSquared uint64 = 0xFFFFFFFE00000001

// Element is a field element in Montgomery form.
type Element uint64

// Zero and One are the additive and multiplicative identities.
var (
	Zero = Element(0)
	One  = New(1)
)

// New returns the element representing v mod p.
func New(v uint64) Element {
	hi, lo := bits.Mul64(v, rSquared)
	return Element(montyred(hi, lo))
}

// FromRaw reinterprets a raw Montgomery limb as an element.
func FromRaw(raw uint64) Element {
	return Element(raw)
}

// Raw returns the Montgomery limb without canonicalizing.
func (e Element) Raw() uint64 {
	return uint64(e)
}

// Value returns the canonical residue in [0, p).
func (e Element) Value() uint64 {
	return montyred(0, uint64(e))
}

// Add returns e + o.
func (e Element) Add(o Element) Element {
	// a + b == a - (p - b), sharing the carry trick with Sub.
	x, c := bits.Sub64(uint64(e), Modulus-uint64(o), 0)
	return Element(x - 0xFFFFFFFF*c)
}

// Sub returns e - o.
func (e Element) Sub(o Element) Element {
	x, c := bits.Sub64(uint64(e), uint64(o), 0)
	return Element(x - 0xFFFFFFFF*c)
}

// Mul returns e * o.
func (e Element) Mul(o Element) Element {
	hi, lo := bits.Mul64(uint64(e), uint64(o))
	return Element(montyred(hi, lo))
}

// Square returns e * e.
func (e Element) Square() Element {
	return e.Mul(e)
}

// Equal reports whether e and o represent the same residue.
func (e Element) Equal(o Element) bool {
	return e.Value() == o.Value()
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.Value() == 0
}

func (e Element) String() string {
	return fmt.Sprintf("%d", e.Value())
}

// Reduce128 performs a Montgomery reduction of the 128-bit value
// hi*2^64 + lo to a raw limb. Exposed for the pointwise step of the
// fast linear layer, which shifts raw limbs into the 128-bit range
// before reducing.
func Reduce128(hi, lo uint64) Element {
	return Element(montyred(hi, lo))
}

// montyred computes x * R^-1 mod p for x = hi*2^64 + lo, exploiting
// that p = 2^64 - 2^32 + 1 makes the reduction a handful of shifts and
// carries. The result is a limb in [0, 2^64), not necessarily < p.
func montyred(hi, lo uint64) uint64 {
	a, e := bits.Add64(lo, lo<<32, 0)
	b := a - a>>32 - e
	r, c := bits.Sub64(hi, b, 0)
	return r - 0xFFFFFFFF*c
}
