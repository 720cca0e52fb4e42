package tip5

import "github.com/silvermint/amt/bfield"

// Sponge is a stateful variable-length sponge session over the Tip5
// permutation. The zero state is the variable-length domain; a sponge
// must never be switched to fixed-length use mid-session.
type Sponge struct {
	state [StateSize]bfield.Element
}

// NewSponge returns a sponge initialized to the variable-length
// domain (the all-zero state).
func NewSponge() *Sponge {
	return &Sponge{}
}

// Absorb adds a block element-wise into the rate portion of the state
// and applies the permutation.
func (s *Sponge) Absorb(block [Rate]bfield.Element) {
	for i := 0; i < Rate; i++ {
		s.state[i] = s.state[i].Add(block[i])
	}
	permute(&s.state)
}

// Squeeze returns the current rate portion and applies the
// permutation, so consecutive squeezes produce independent outputs.
func (s *Sponge) Squeeze() [Rate]bfield.Element {
	var out [Rate]bfield.Element
	copy(out[:], s.state[:Rate])
	permute(&s.state)
	return out
}
