package amt

import "github.com/silvermint/amt/digest"

// maxTreeHeight bounds the height accepted by the verifier so that
// node-index arithmetic cannot overflow an int.
const maxTreeHeight = 62

// VerifyAuthenticationStructure checks a batch of claimed leaf
// openings against a claimed root, using only the root, the tree
// height, and the supplied digests; it never touches a tree. It is
// the trust boundary against an untrusted prover: every malformed
// input degrades to false, and the function never panics.
//
// The verifier recomputes the expected authentication-structure index
// set itself, seeds a partial node map from the structure and the
// openings, and then hashes its way up one level per round, failing
// on any node it would have to invent and on any node the structure
// claims but the tree shape says it could compute on its own.
func VerifyAuthenticationStructure(
	h Hasher,
	root digest.Digest,
	treeHeight int,
	leafIndices []int,
	leafDigests []digest.Digest,
	authStructure []digest.Digest,
) bool {
	if len(leafIndices) != len(leafDigests) {
		return false
	}
	if len(leafIndices) == 0 {
		return true
	}
	if treeHeight < 0 || treeHeight > maxTreeHeight {
		return false
	}
	numLeaves := 1 << treeHeight
	for _, li := range leafIndices {
		if li < 0 || li >= numLeaves {
			return false
		}
	}

	// A too-long structure is as invalid as a too-short one.
	expectedIndices := authStructureNodeIndices(2*numLeaves, leafIndices)
	if len(authStructure) != len(expectedIndices) {
		return false
	}

	partial := make(map[int]digest.Digest, len(expectedIndices)+len(leafIndices))
	for i, ni := range expectedIndices {
		partial[ni] = authStructure[i]
	}
	for i, li := range leafIndices {
		ni := li + numLeaves
		if existing, ok := partial[ni]; ok {
			// Duplicate openings of one leaf must agree. Structure
			// indices never collide with opened leaves, since opened
			// leaves are computable by definition.
			if !existing.Equal(leafDigests[i]) {
				return false
			}
			continue
		}
		partial[ni] = leafDigests[i]
	}

	frontier := make(map[int]struct{}, len(leafIndices))
	for _, li := range leafIndices {
		frontier[(li+numLeaves)/2] = struct{}{}
	}
	for round := 0; round < treeHeight; round++ {
		next := make(map[int]struct{}, len(frontier))
		for parent := range frontier {
			if _, ok := partial[parent]; ok {
				// A parent already present means the structure
				// contained a computable node; it is malformed.
				return false
			}
			left, lok := partial[2*parent]
			right, rok := partial[2*parent+1]
			if !lok || !rok {
				return false
			}
			partial[parent] = h.HashPair(left, right)
			if parent > rootIndex {
				next[parent/2] = struct{}{}
			}
		}
		frontier = next
	}

	computedRoot, ok := partial[rootIndex]
	if !ok {
		return false
	}
	return computedRoot.Equal(root)
}
