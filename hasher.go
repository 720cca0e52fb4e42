package amt

import "github.com/silvermint/amt/digest"

// Hasher is the pairwise hashing capability the tree and the verifier
// are generic over. Implementations must be pure: same inputs, same
// digest, no shared mutable state, so trees may hash levels in
// parallel and independent verifiers may run concurrently.
type Hasher interface {
	HashPair(left, right digest.Digest) digest.Digest
}
