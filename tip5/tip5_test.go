package tip5

import (
	"math/rand"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/silvermint/amt/bfield"
	"github.com/silvermint/amt/digest"
)

func readGolden(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/golden.json")
	require.NoError(t, err)
	return data
}

func goldenElements(t *testing.T, data []byte, path string) []uint64 {
	t.Helper()
	results := gjson.GetBytes(data, path).Array()
	require.NotEmpty(t, results, "missing golden path %q", path)
	vs := make([]uint64, len(results))
	for i, r := range results {
		v, err := strconv.ParseUint(r.String(), 10, 64)
		require.NoError(t, err)
		vs[i] = v
	}
	return vs
}

func TestMDSGoldenVector(t *testing.T) {
	data := readGolden(t)
	input := goldenElements(t, data, "mds.input")
	output := goldenElements(t, data, "mds.output")
	require.Len(t, input, StateSize)
	require.Len(t, output, StateSize)

	var st [StateSize]bfield.Element
	for i, v := range input {
		st[i] = bfield.New(v)
	}
	mdsNoswap(&st)
	for i := range st {
		assert.Equal(t, output[i], st[i].Value(), "word %d", i)
	}
}

func TestMDSPathsAgreeBitForBit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 500; trial++ {
		var a, b [StateSize]bfield.Element
		for i := range a {
			raw := rng.Uint64()
			a[i] = bfield.FromRaw(raw)
			b[i] = bfield.FromRaw(raw)
		}
		mdsNoswap(&a)
		mdsSwap(&b)
		for i := range a {
			// raw limbs, not just residues
			require.Equal(t, a[i].Raw(), b[i].Raw(), "trial %d word %d", trial, i)
		}
	}
}

func TestTransformRoundTripScalesBySixteen(t *testing.T) {
	sixteen := bfield.New(16)
	rng := rand.New(rand.NewSource(2))
	var x, y [StateSize]bfield.Element
	for i := range x {
		x[i] = bfield.New(rng.Uint64() % bfield.Modulus)
		y[i] = x[i]
	}
	nttNoswap(&y)
	inttNoswap(&y)
	for i := range y {
		assert.True(t, y[i].Equal(x[i].Mul(sixteen)), "word %d", i)
	}

	z := ntt16(x)
	z = intt16(z)
	for i := range z {
		assert.True(t, z[i].Equal(x[i].Mul(sixteen)), "word %d", i)
	}
}

func TestMDSLinearity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		a := bfield.New(rng.Uint64() % bfield.Modulus)
		b := bfield.New(rng.Uint64() % bfield.Modulus)
		var u, v, combined [StateSize]bfield.Element
		for i := range u {
			u[i] = bfield.New(rng.Uint64() % bfield.Modulus)
			v[i] = bfield.New(rng.Uint64() % bfield.Modulus)
			combined[i] = a.Mul(u[i]).Add(b.Mul(v[i]))
		}
		mdsNoswap(&u)
		mdsNoswap(&v)
		mdsNoswap(&combined)
		for i := range combined {
			want := a.Mul(u[i]).Add(b.Mul(v[i]))
			require.True(t, combined[i].Equal(want), "trial %d word %d", trial, i)
		}
	}
}

func TestMDSCirculancy(t *testing.T) {
	// first column of the matrix
	var unit [StateSize]bfield.Element
	unit[0] = bfield.One
	column := unit
	mdsNoswap(&column)

	rng := rand.New(rand.NewSource(4))
	for trial := 0; trial < 20; trial++ {
		var x [StateSize]bfield.Element
		for i := range x {
			x[i] = bfield.New(rng.Uint64() % bfield.Modulus)
		}
		fast := x
		mdsNoswap(&fast)

		// direct cyclic convolution against the derived column
		for i := 0; i < StateSize; i++ {
			direct := bfield.Zero
			for j := 0; j < StateSize; j++ {
				direct = direct.Add(column[(i-j+StateSize)%StateSize].Mul(x[j]))
			}
			require.True(t, fast[i].Equal(direct), "trial %d word %d", trial, i)
		}
	}
}

func TestHash10GoldenChain(t *testing.T) {
	data := readGolden(t)
	expected := goldenElements(t, data, "hash10_chain")
	require.Len(t, expected, digest.Len)

	// iterate hash10 over a sliding window of its own output
	var preimage [Rate]bfield.Element
	var out [digest.Len]bfield.Element
	for i := 0; i < 6; i++ {
		out = Hash10(preimage)
		copy(preimage[i:], out[:])
	}
	out = Hash10(preimage)
	for i := range out {
		assert.Equal(t, expected[i], out[i].Value(), "digest word %d", i)
	}
}

func TestHashVarlenGoldenSums(t *testing.T) {
	data := readGolden(t)
	expected := goldenElements(t, data, "varlen_sums.digest_sum")
	require.Len(t, expected, digest.Len)
	numInputs := int(gjson.GetBytes(data, "varlen_sums.num_inputs").Int())
	require.Positive(t, numInputs)

	var sums [digest.Len]bfield.Element
	for n := 0; n < numInputs; n++ {
		input := make([]bfield.Element, n)
		for i := range input {
			input[i] = bfield.New(uint64(i))
		}
		d := HashVarlen(input)
		for i := range sums {
			sums[i] = sums[i].Add(d[i])
		}
	}
	for i := range sums {
		assert.Equal(t, expected[i], sums[i].Value(), "digest word %d", i)
	}
}

func TestHashVarlenLengthSensitivity(t *testing.T) {
	// the 1||0* framing must distinguish inputs that only differ by
	// trailing zeros
	a := HashVarlen([]bfield.Element{bfield.New(7)})
	b := HashVarlen([]bfield.Element{bfield.New(7), bfield.Zero})
	assert.False(t, a.Equal(b))

	empty := HashVarlen(nil)
	zero := HashVarlen([]bfield.Element{bfield.Zero})
	assert.False(t, empty.Equal(zero))
}

func TestHashPairMatchesHash10(t *testing.T) {
	var left, right digest.Digest
	for i := 0; i < digest.Len; i++ {
		left[i] = bfield.New(uint64(i + 1))
		right[i] = bfield.New(uint64(i + 100))
	}
	var concatenated [Rate]bfield.Element
	copy(concatenated[:digest.Len], left[:])
	copy(concatenated[digest.Len:], right[:])

	want := Hash10(concatenated)
	got := HashPair(left, right)
	assert.True(t, got.Equal(digest.Digest(want)))
}

func TestDomainSeparation(t *testing.T) {
	// the same 10 words hashed in the fixed-length and
	// variable-length domains must not collide
	var input [Rate]bfield.Element
	for i := range input {
		input[i] = bfield.New(uint64(i))
	}
	fixed := Hash10(input)

	sponge := NewSponge()
	sponge.Absorb(input)
	variable := sponge.Squeeze()

	same := true
	for i := 0; i < digest.Len; i++ {
		if !fixed[i].Equal(variable[i]) {
			same = false
		}
	}
	assert.False(t, same)
}

func TestSpongeSqueezeAdvancesState(t *testing.T) {
	sponge := NewSponge()
	var block [Rate]bfield.Element
	block[0] = bfield.One
	sponge.Absorb(block)

	first := sponge.Squeeze()
	second := sponge.Squeeze()
	same := true
	for i := range first {
		if !first[i].Equal(second[i]) {
			same = false
		}
	}
	assert.False(t, same)

	// deterministic across sessions
	replay := NewSponge()
	replay.Absorb(block)
	again := replay.Squeeze()
	for i := range first {
		require.True(t, first[i].Equal(again[i]), "word %d", i)
	}
}

func TestPermutationChangesEveryWord(t *testing.T) {
	var st [StateSize]bfield.Element
	permute(&st)
	for i, e := range st {
		assert.False(t, e.IsZero(), "word %d unchanged", i)
	}
}
