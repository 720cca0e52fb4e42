package amt_test

import (
	"math/rand"
	"sort"
	"testing"

	fuzz "github.com/google/gofuzz"

	"github.com/silvermint/amt"
	"github.com/silvermint/amt/bfield"
	"github.com/silvermint/amt/digest"
	"github.com/silvermint/amt/tip5"
)

func TestFuzzOpenVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("TestFuzzOpenVerify skipped in short mode.")
	}
	var (
		treeHeights     = []int{0, 1, 2, 3, 5, 7}
		openingsPerTree = 16
		maxOpeningSize  = 24
	)

	h := tip5.Hasher{}
	rng := rand.New(rand.NewSource(99))
	for _, height := range treeHeights {
		numLeaves := 1 << height
		tree := amt.FromDigests(h, makeFuzzedLeaves(numLeaves))

		for opening := 0; opening < openingsPerTree; opening++ {
			indices := makeRandIndices(rng, numLeaves, maxOpeningSize)
			leaves := tree.LeavesByIndices(indices)
			structure := tree.AuthenticationStructure(indices)

			if ok := amt.VerifyAuthenticationStructure(h, tree.Root(), height, indices, leaves, structure); !ok {
				t.Fatalf("expected VerifyAuthenticationStructure() == true; height = %v; indices = %v", height, indices)
			}

			// any single flipped digest must break the opening
			if len(leaves) > 0 {
				corrupted := append([]digest.Digest(nil), leaves...)
				position := rng.Intn(len(corrupted))
				corrupted[position] = flipDigest(corrupted[position])
				if ok := amt.VerifyAuthenticationStructure(h, tree.Root(), height, indices, corrupted, structure); ok {
					t.Fatalf("corrupted leaf %v verified to true; height = %v; indices = %v", position, height, indices)
				}
			}
			if len(structure) > 0 {
				corrupted := append([]digest.Digest(nil), structure...)
				position := rng.Intn(len(corrupted))
				corrupted[position] = flipDigest(corrupted[position])
				if ok := amt.VerifyAuthenticationStructure(h, tree.Root(), height, indices, leaves, corrupted); ok {
					t.Fatalf("corrupted structure node %v verified to true; height = %v; indices = %v", position, height, indices)
				}
			}
		}
	}
}

func makeFuzzedLeaves(numLeaves int) []digest.Digest {
	f := fuzz.New().NilChance(0).Funcs(
		func(d *digest.Digest, c fuzz.Continue) {
			var vs [digest.Len]uint64
			for i := range vs {
				vs[i] = c.Uint64() % bfield.Modulus
			}
			*d = digest.FromUint64s(vs)
		})
	leaves := make([]digest.Digest, numLeaves)
	for i := range leaves {
		f.Fuzz(&leaves[i])
	}
	return leaves
}

func makeRandIndices(rng *rand.Rand, numLeaves, maxSize int) []int {
	n := rng.Intn(maxSize + 1)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = rng.Intn(numLeaves)
	}
	sort.Ints(indices)
	return indices
}

func flipDigest(d digest.Digest) digest.Digest {
	vs := d.Values()
	vs[2] ^= 1
	return digest.FromUint64s(vs)
}
