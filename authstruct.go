package amt

import (
	"fmt"
	"sort"

	"github.com/silvermint/amt/digest"
)

// authStructureNodeIndices computes the node indices of the
// authentication structure for a batch of leaf openings, for a tree
// with numNodes total nodes (twice the leaf count). Walking each
// requested leaf up to the root, every node on a path is computable
// by the verifier and every sibling of a path node is needed; the
// structure is the needed set minus the computable set, deduplicated
// and sorted ascending. Duplicate leaf indices are permitted.
//
// The set is minimal: omitting a non-computable needed node makes
// root recomputation impossible, and including a computable node is
// redundant since the verifier derives it anyway.
func authStructureNodeIndices(numNodes int, leafIndices []int) []int {
	numLeaves := numNodes / 2
	computable := make(map[int]struct{})
	needed := make(map[int]struct{})
	for _, leafIndex := range leafIndices {
		nodeIndex := leafIndex + numLeaves
		for nodeIndex > rootIndex {
			computable[nodeIndex] = struct{}{}
			needed[nodeIndex^1] = struct{}{}
			nodeIndex /= 2
		}
	}
	indices := make([]int, 0, len(needed))
	for i := range needed {
		if _, ok := computable[i]; !ok {
			indices = append(indices, i)
		}
	}
	sort.Ints(indices)
	return indices
}

// AuthenticationStructure returns the authentication structure for
// the given leaf indices: the tree's stored digests at the indices
// computed by authStructureNodeIndices, in sorted-index order.
// Out-of-range leaf indices are a contract violation and panic.
func (t *Tree) AuthenticationStructure(leafIndices []int) []digest.Digest {
	for _, li := range leafIndices {
		if li < 0 || li >= t.NumLeaves() {
			panic(fmt.Sprintf("amt: leaf index %d out of range for %d leaves", li, t.NumLeaves()))
		}
	}
	nodeIndices := authStructureNodeIndices(len(t.nodes), leafIndices)
	structure := make([]digest.Digest, len(nodeIndices))
	for i, ni := range nodeIndices {
		structure[i] = t.nodes[ni]
	}
	return structure
}
