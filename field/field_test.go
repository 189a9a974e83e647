package field_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/plonkcore/prover/field"
)

func TestRootOfUnityOrder(t *testing.T) {
	for _, n := range []uint64{1, 2, 4, 8, 64, 1024} {
		omega, err := field.RootOfUnity(n)
		require.NoError(t, err)

		power := omega
		for i := uint64(1); i < n; i++ {
			require.False(t, power.IsOne(), "omega^%d should not be 1 (n=%d)", i, n)
			power.Mul(&power, &omega)
		}
		require.True(t, power.IsOne(), "omega^n must equal 1 (n=%d)", n)
	}
}

func TestRootOfUnityRejectsNonPowerOfTwo(t *testing.T) {
	_, err := field.RootOfUnity(3)
	require.Error(t, err)
}

func TestRootsOfUnitySequence(t *testing.T) {
	const n = 16
	roots, err := field.RootsOfUnity(n)
	require.NoError(t, err)
	require.Len(t, roots, n)
	require.True(t, roots[0].IsOne())

	omega, err := field.RootOfUnity(n)
	require.NoError(t, err)
	for i := 1; i < n; i++ {
		var want field.Element
		want.Mul(&roots[i-1], &omega)
		require.True(t, want.Equal(&roots[i]))
	}
}

func TestBatchInvert(t *testing.T) {
	xs := []field.Element{field.FromInt64(3), field.FromInt64(5), field.FromInt64(7)}
	inv := field.BatchInvert(xs)
	require.Len(t, inv, len(xs))
	for i := range xs {
		var one field.Element
		one.Mul(&xs[i], &inv[i])
		require.True(t, one.IsOne())
	}
}

func TestRLCProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	elementGen := gen.Int64Range(-1_000_000, 1_000_000).Map(field.FromInt64)

	properties.Property("rlc(x,y,beta,gamma) == x + beta*y + gamma", prop.ForAll(
		func(x, y, beta, gamma field.Element) bool {
			got := field.RLC(x, y, beta, gamma)

			var want field.Element
			want.Mul(&y, &beta).Add(&want, &x).Add(&want, &gamma)
			return got.Equal(&want)
		},
		elementGen, elementGen, elementGen, elementGen,
	))

	properties.TestingRun(t)
}
