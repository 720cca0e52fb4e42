// Package amt implements an array-backed Merkle tree over digests of
// field elements, generic over the pairwise hasher, together with
// deduplicated authentication structures: the minimal set of sibling
// digests a verifier needs to recompute the root for a batch of
// opened leaves.
package amt

import (
	"fmt"
	"math/bits"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/silvermint/amt/digest"
)

// rootIndex is the node index of the root in the flat node array.
const rootIndex = 1

// parallelizationThreshold is the smallest tree level worth fanning
// out over goroutines; below it the per-level barrier costs more than
// the hashing.
const parallelizationThreshold = 16

// Tree is an immutable Merkle tree over 2^h leaf digests. Nodes live
// in a flat array of length 2L: index 0 is unused, index 1 is the
// root, leaves occupy [L, 2L), the parent of node i is i/2 and its
// sibling is i^1.
type Tree struct {
	hasher Hasher
	nodes  []digest.Digest
}

// FromDigests builds a tree over the given leaves. The leaf count
// must be a nonzero power of two; violating that is a contract
// violation and panics, since no tree is defined otherwise. Leaves
// are copied verbatim into the node array, never hashed again at the
// leaf level.
func FromDigests(h Hasher, leaves []digest.Digest) *Tree {
	n := len(leaves)
	if n == 0 || n&(n-1) != 0 {
		panic(fmt.Sprintf("amt: leaf count must be a nonzero power of two, got %d", n))
	}
	nodes := make([]digest.Digest, 2*n)
	copy(nodes[n:], leaves)
	for width := n / 2; width >= 1; width /= 2 {
		if width >= parallelizationThreshold {
			buildLevelParallel(h, nodes, width)
		} else {
			for i := width; i < 2*width; i++ {
				nodes[i] = h.HashPair(nodes[2*i], nodes[2*i+1])
			}
		}
	}
	return &Tree{hasher: h, nodes: nodes}
}

// buildLevelParallel computes the level [width, 2*width) of the node
// array. Every parent reads two already-computed children and writes
// its own slot, so chunks share nothing.
func buildLevelParallel(h Hasher, nodes []digest.Digest, width int) {
	workers := runtime.GOMAXPROCS(0)
	if workers > width {
		workers = width
	}
	chunk := (width + workers - 1) / workers
	var g errgroup.Group
	for start := width; start < 2*width; start += chunk {
		end := min(start+chunk, 2*width)
		g.Go(func() error {
			for i := start; i < end; i++ {
				nodes[i] = h.HashPair(nodes[2*i], nodes[2*i+1])
			}
			return nil
		})
	}
	// workers never return an error
	_ = g.Wait()
}

// Root returns the root digest.
func (t *Tree) Root() digest.Digest {
	return t.nodes[rootIndex]
}

// NumLeaves returns the leaf count, always a power of two.
func (t *Tree) NumLeaves() int {
	return len(t.nodes) / 2
}

// Height returns log2 of the leaf count.
func (t *Tree) Height() int {
	return bits.TrailingZeros(uint(t.NumLeaves()))
}

// Leaf returns the leaf digest at the given leaf index. Out-of-range
// indices are a contract violation and panic.
func (t *Tree) Leaf(leafIndex int) digest.Digest {
	if leafIndex < 0 || leafIndex >= t.NumLeaves() {
		panic(fmt.Sprintf("amt: leaf index %d out of range for %d leaves", leafIndex, t.NumLeaves()))
	}
	return t.nodes[leafIndex+t.NumLeaves()]
}

// LeavesByIndices returns the leaf digests at the given leaf indices,
// in argument order. Duplicates are permitted; out-of-range indices
// panic.
func (t *Tree) LeavesByIndices(leafIndices []int) []digest.Digest {
	leaves := make([]digest.Digest, len(leafIndices))
	for i, li := range leafIndices {
		leaves[i] = t.Leaf(li)
	}
	return leaves
}

// AllLeaves returns a copy of all leaf digests in index order.
func (t *Tree) AllLeaves() []digest.Digest {
	leaves := make([]digest.Digest, t.NumLeaves())
	copy(leaves, t.nodes[t.NumLeaves():])
	return leaves
}

// Node returns the digest stored at the given node index. Index 0 is
// unused and out of range.
func (t *Tree) Node(nodeIndex int) digest.Digest {
	if nodeIndex < rootIndex || nodeIndex >= len(t.nodes) {
		panic(fmt.Sprintf("amt: node index %d out of range for %d nodes", nodeIndex, len(t.nodes)))
	}
	return t.nodes[nodeIndex]
}
