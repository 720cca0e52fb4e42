// Package tip5 implements the Tip5 algebraic sponge permutation over
// the prime field of order 2^64 - 2^32 + 1, and the fixed-length and
// variable-length hash functions built from it.
package tip5

import (
	"github.com/silvermint/amt/bfield"
	"github.com/silvermint/amt/digest"
)

const (
	// StateSize is the permutation width in field elements.
	StateSize = 16
	// Rate is the number of state words exposed for absorb/squeeze.
	Rate = 10
	// Capacity is the number of hidden state words.
	Capacity = StateSize - Rate
	// NumRounds is the fixed round count of the permutation.
	NumRounds = 5
	// numSplitAndLookup is the number of state words substituted
	// byte-wise; the rest go through the power map.
	numSplitAndLookup = 4
)

// splitAndLookup substitutes each byte of the raw limb through the
// S-box table. This is deliberately not a field operation: the
// substitution acts on the Montgomery representation.
func splitAndLookup(e bfield.Element) bfield.Element {
	raw := e.Raw()
	var out uint64
	for i := 0; i < 64; i += 8 {
		out |= uint64(lookupTable[byte(raw>>i)]) << i
	}
	return bfield.FromRaw(out)
}

func sboxLayer(st *[StateSize]bfield.Element) {
	for i := 0; i < numSplitAndLookup; i++ {
		st[i] = splitAndLookup(st[i])
	}
	for i := numSplitAndLookup; i < StateSize; i++ {
		sq := st[i].Square()
		qu := sq.Square()
		st[i] = st[i].Mul(sq.Mul(qu))
	}
}

// nttNoswap is an iterative decimation-in-frequency transform of the
// state. It leaves the output in bit-reversed order; the matching
// inverse consumes that order directly, so no reordering pass is
// needed anywhere.
func nttNoswap(x *[StateSize]bfield.Element) {
	for j := 0; j < 8; j++ {
		u := x[j]
		v := x[j+8].Mul(bfield.One)
		x[j] = u.Add(v)
		x[j+8] = u.Sub(v)
	}
	for i := 0; i < 2; i++ {
		zeta := twiddles[i]
		s := i * 8
		for j := s; j < s+4; j++ {
			u := x[j]
			v := x[j+4].Mul(zeta)
			x[j] = u.Add(v)
			x[j+4] = u.Sub(v)
		}
	}
	for i := 0; i < 4; i++ {
		zeta := twiddles[i]
		s := i * 4
		for j := s; j < s+2; j++ {
			u := x[j]
			v := x[j+2].Mul(zeta)
			x[j] = u.Add(v)
			x[j+2] = u.Sub(v)
		}
	}
	for i := 0; i < 8; i++ {
		zeta := twiddles[i]
		s := i * 2
		u := x[s]
		v := x[s+1].Mul(zeta)
		x[s] = u.Add(v)
		x[s+1] = u.Sub(v)
	}
}

func inttNoswap(x *[StateSize]bfield.Element) {
	for k := 0; k < StateSize; k += 2 {
		u := x[k+1]
		v := x[k]
		x[k+1] = v.Sub(u)
		x[k] = v.Add(u)
	}
	for j := 0; j < 2; j++ {
		zeta := invTwiddles[4*j]
		for base := 0; base < StateSize; base += 4 {
			u := x[base+j+2].Mul(zeta)
			v := x[base+j]
			x[base+j+2] = v.Sub(u)
			x[base+j] = v.Add(u)
		}
	}
	for j := 0; j < 4; j++ {
		zeta := invTwiddles[2*j]
		for base := 0; base < StateSize; base += 8 {
			u := x[base+j+4].Mul(zeta)
			v := x[base+j]
			x[base+j+4] = v.Sub(u)
			x[base+j] = v.Add(u)
		}
	}
	for j := 0; j < 8; j++ {
		zeta := invTwiddles[j]
		u := x[j+8].Mul(zeta)
		v := x[j]
		x[j+8] = v.Sub(u)
		x[j] = v.Add(u)
	}
}

// pointwise multiplies the transformed state by the transformed
// circulant column. The coefficients are powers of two, so each
// multiplication is a raw-limb shift into 128-bit range followed by
// one Montgomery reduction.
func pointwise(x *[StateSize]bfield.Element, shifts *[StateSize]uint) {
	for i := range x {
		raw := x[i].Raw()
		s := shifts[i]
		x[i] = bfield.Reduce128(raw>>(64-s), raw<<s)
	}
}

// mdsNoswap applies the linear diffusion layer via the iterative
// transform pair.
func mdsNoswap(st *[StateSize]bfield.Element) {
	nttNoswap(st)
	pointwise(st, &shiftsBitrev)
	inttNoswap(st)
}

// mdsSwap applies the same linear layer via recursive
// decimation-in-time transforms producing natural output order. The
// two paths must agree bit-for-bit on raw limbs; tests enforce this.
func mdsSwap(st *[StateSize]bfield.Element) {
	y := ntt16(*st)
	pointwise(&y, &shiftsNatural)
	*st = intt16(y)
}

func ntt2(x [2]bfield.Element) [2]bfield.Element {
	return [2]bfield.Element{x[0].Add(x[1]), x[0].Sub(x[1])}
}

func ntt4(x [4]bfield.Element) [4]bfield.Element {
	odds := ntt2([2]bfield.Element{x[1], x[3]})
	evens := ntt2([2]bfield.Element{x[0], x[2]})
	t := odds[1].Mul(twoPow[4])
	return [4]bfield.Element{
		evens[0].Add(odds[0]),
		evens[1].Add(t),
		evens[0].Sub(odds[0]),
		evens[1].Sub(t),
	}
}

func ntt8(x [8]bfield.Element) [8]bfield.Element {
	odds := ntt4([4]bfield.Element{x[1], x[3], x[5], x[7]})
	evens := ntt4([4]bfield.Element{x[0], x[2], x[4], x[6]})
	t := [4]bfield.Element{
		odds[0],
		odds[1].Mul(twoPow[2]),
		odds[2].Mul(twoPow[4]),
		odds[3].Mul(twoPow[6]),
	}
	var r [8]bfield.Element
	for i := 0; i < 4; i++ {
		r[i] = evens[i].Add(t[i])
		r[i+4] = evens[i].Sub(t[i])
	}
	return r
}

func ntt16(x [StateSize]bfield.Element) [StateSize]bfield.Element {
	var odd, even [8]bfield.Element
	for i := 0; i < 8; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}
	odds := ntt8(odd)
	evens := ntt8(even)
	var t [8]bfield.Element
	t[0] = odds[0]
	for i := 1; i < 8; i++ {
		t[i] = odds[i].Mul(twoPow[i])
	}
	var r [StateSize]bfield.Element
	for i := 0; i < 8; i++ {
		r[i] = evens[i].Add(t[i])
		r[i+8] = evens[i].Sub(t[i])
	}
	return r
}

func intt2(x [2]bfield.Element) [2]bfield.Element {
	return [2]bfield.Element{x[0].Add(x[1]), x[0].Sub(x[1])}
}

func intt4(x [4]bfield.Element) [4]bfield.Element {
	odds := intt2([2]bfield.Element{x[1], x[3]})
	evens := intt2([2]bfield.Element{x[0], x[2]})
	t := odds[1].Mul(twoPowInv[4])
	return [4]bfield.Element{
		evens[0].Add(odds[0]),
		evens[1].Add(t),
		evens[0].Sub(odds[0]),
		evens[1].Sub(t),
	}
}

func intt8(x [8]bfield.Element) [8]bfield.Element {
	odds := intt4([4]bfield.Element{x[1], x[3], x[5], x[7]})
	evens := intt4([4]bfield.Element{x[0], x[2], x[4], x[6]})
	t := [4]bfield.Element{
		odds[0],
		odds[1].Mul(twoPowInv[2]),
		odds[2].Mul(twoPowInv[4]),
		odds[3].Mul(twoPowInv[6]),
	}
	var r [8]bfield.Element
	for i := 0; i < 4; i++ {
		r[i] = evens[i].Add(t[i])
		r[i+4] = evens[i].Sub(t[i])
	}
	return r
}

func intt16(x [StateSize]bfield.Element) [StateSize]bfield.Element {
	var odd, even [8]bfield.Element
	for i := 0; i < 8; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}
	odds := intt8(odd)
	evens := intt8(even)
	var t [8]bfield.Element
	t[0] = odds[0]
	for i := 1; i < 8; i++ {
		t[i] = odds[i].Mul(twoPowInv[i])
	}
	var r [StateSize]bfield.Element
	for i := 0; i < 8; i++ {
		r[i] = evens[i].Add(t[i])
		r[i+8] = evens[i].Sub(t[i])
	}
	return r
}

// permute applies the full 5-round permutation in place.
func permute(st *[StateSize]bfield.Element) {
	for r := 0; r < NumRounds; r++ {
		sboxLayer(st)
		mdsNoswap(st)
		rc := roundConstants[r*StateSize : (r+1)*StateSize]
		for i := range st {
			st[i] = st[i].Add(rc[i])
		}
	}
}

// fixedLengthState returns a state in the fixed-length domain: the
// capacity words are set to one, distinguishing Hash10 inputs from
// variable-length sponge use.
func fixedLengthState() [StateSize]bfield.Element {
	var st [StateSize]bfield.Element
	for i := Rate; i < StateSize; i++ {
		st[i] = bfield.One
	}
	return st
}

// Hash10 hashes exactly Rate field elements in the fixed-length
// domain and returns the first digest.Len rate words. No padding is
// applied; the fixed input size makes it unnecessary.
func Hash10(input [Rate]bfield.Element) [digest.Len]bfield.Element {
	st := fixedLengthState()
	copy(st[:Rate], input[:])
	permute(&st)
	var out [digest.Len]bfield.Element
	copy(out[:], st[:digest.Len])
	return out
}

// HashPair hashes the concatenation of two digests with Hash10.
func HashPair(left, right digest.Digest) digest.Digest {
	var input [Rate]bfield.Element
	copy(input[:digest.Len], left[:])
	copy(input[digest.Len:], right[:])
	return Hash10(input)
}

// HashVarlen hashes a sequence of field elements of any length. The
// input is framed by appending a single one element and zero-padding
// to a multiple of Rate, then absorbed into the variable-length
// domain; the framing is injective, so inputs of different lengths
// cannot collide through padding.
func HashVarlen(input []bfield.Element) digest.Digest {
	sponge := NewSponge()
	padded := make([]bfield.Element, len(input), len(input)+Rate)
	copy(padded, input)
	padded = append(padded, bfield.One)
	for len(padded)%Rate != 0 {
		padded = append(padded, bfield.Zero)
	}
	var block [Rate]bfield.Element
	for i := 0; i < len(padded); i += Rate {
		copy(block[:], padded[i:i+Rate])
		sponge.Absorb(block)
	}
	var d digest.Digest
	copy(d[:], sponge.state[:digest.Len])
	return d
}

// Hasher implements the pairwise hashing capability the Merkle tree
// is generic over.
type Hasher struct{}

func (Hasher) HashPair(left, right digest.Digest) digest.Digest {
	return HashPair(left, right)
}
